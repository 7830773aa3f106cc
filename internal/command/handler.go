package command

import (
	"context"

	"github.com/example/promostock/internal/domain/sharing"
	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
)

// Handler is the write-side façade: single movements, batches and shared
// links all enter here.
type Handler struct {
	recorder *stock.Recorder
	sharing  *sharing.Service
}

func NewHandler(recorder *stock.Recorder, sharingSvc *sharing.Service) *Handler {
	return &Handler{recorder: recorder, sharing: sharingSvc}
}

// Record applies a single movement.
func (h *Handler) Record(ctx context.Context, req stock.RecordRequest) (*store.Movement, error) {
	return h.recorder.Record(ctx, req)
}

// ApplyBatch applies the batch's kind/promoter/employee to each tuple in
// order, one recorder call per tuple. A tuple failure does not roll back
// earlier tuples; every outcome lands in the result. If the context is
// cancelled mid-batch, tuples already committed stay committed and the
// remainder is reported as failed.
func (h *Handler) ApplyBatch(ctx context.Context, cmd ApplyBatch) BatchResult {
	result := BatchResult{
		Succeeded: make([]BatchSuccess, 0, len(cmd.Tuples)),
		Failed:    make([]BatchFailure, 0),
	}

	for i, tuple := range cmd.Tuples {
		if err := ctx.Err(); err != nil {
			for _, rest := range cmd.Tuples[i:] {
				result.Failed = append(result.Failed, BatchFailure{Tuple: rest, Reason: err.Error()})
			}
			break
		}

		movement, err := h.recorder.Record(ctx, stock.RecordRequest{
			Kind:       cmd.Kind,
			ItemID:     tuple.ItemID,
			SizeID:     tuple.SizeID,
			Quantity:   tuple.Quantity,
			EmployeeID: cmd.EmployeeID,
			PromoterID: cmd.PromoterID,
			Note:       cmd.Note,
		})
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{Tuple: tuple, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, BatchSuccess{Tuple: tuple, MovementID: movement.ID})
	}

	return result
}

// LinkSharedItem links an item into another brand's view.
func (h *Handler) LinkSharedItem(ctx context.Context, cmd LinkSharedItem) error {
	return h.sharing.Link(ctx, cmd.ItemID, cmd.BrandID)
}

// UnlinkSharedItem removes a brand's link.
func (h *Handler) UnlinkSharedItem(ctx context.Context, cmd UnlinkSharedItem) error {
	return h.sharing.Unlink(ctx, cmd.ItemID, cmd.BrandID)
}
