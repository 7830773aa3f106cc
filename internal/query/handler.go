package query

import (
	"context"
	"errors"

	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
)

// Handler is the read-side façade. Everything here is computed on demand
// from committed counter and log state; there is no cached read model to
// drift.
type Handler struct {
	catalog    store.CatalogStore
	ledger     store.LedgerStore
	projector  *stock.Projector
	reconciler *stock.Reconciler
}

func NewHandler(catalog store.CatalogStore, ledger store.LedgerStore, projector *stock.Projector, reconciler *stock.Reconciler) *Handler {
	return &Handler{
		catalog:    catalog,
		ledger:     ledger,
		projector:  projector,
		reconciler: reconciler,
	}
}

// ItemQuantities returns the item's aggregate quantities.
func (h *Handler) ItemQuantities(ctx context.Context, itemID string) (stock.ItemQuantities, error) {
	if _, err := h.catalog.ItemByID(ctx, itemID); err != nil {
		return stock.ItemQuantities{}, err
	}
	return h.projector.Project(ctx, itemID)
}

// ItemDetail returns the item, its sizes and the projected totals.
func (h *Handler) ItemDetail(ctx context.Context, itemID string) (*ItemDetail, error) {
	item, err := h.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	sizes, err := h.ledger.SizesByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	quantities, err := h.projector.Project(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemDetail{Item: *item, Sizes: sizes, Quantities: quantities}, nil
}

// ItemsByBrand lists a brand's items, shared ones included.
func (h *Handler) ItemsByBrand(ctx context.Context, brandID string) ([]store.Item, error) {
	return h.catalog.ItemsByBrand(ctx, brandID)
}

// Holdings replays the promoter's movements and enriches each entry with
// display names where the catalog still knows them.
func (h *Handler) Holdings(ctx context.Context, promoterID string) ([]HoldingDetail, error) {
	holdings, err := h.reconciler.Holdings(ctx, promoterID)
	if err != nil {
		return nil, err
	}

	details := make([]HoldingDetail, 0, len(holdings))
	for _, holding := range holdings {
		detail := HoldingDetail{Holding: holding}
		if item, err := h.catalog.ItemByID(ctx, holding.ItemID); err == nil {
			detail.ItemName = item.Name
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if size, err := h.ledger.SizeByID(ctx, holding.SizeID); err == nil {
			detail.Size = size.Size
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

// MovementsByItem returns the item's movement history, newest first.
func (h *Handler) MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]store.Movement, error) {
	return h.ledger.MovementsByItem(ctx, itemID, limit, offset)
}

// MovementsByPromoter returns the promoter's movement history, oldest first.
func (h *Handler) MovementsByPromoter(ctx context.Context, promoterID string) ([]store.Movement, error) {
	return h.ledger.MovementsByPromoter(ctx, promoterID)
}

func (h *Handler) Brands(ctx context.Context) ([]store.Brand, error) {
	return h.catalog.Brands(ctx)
}

func (h *Handler) Promoters(ctx context.Context) ([]store.Promoter, error) {
	return h.catalog.Promoters(ctx)
}

func (h *Handler) Employees(ctx context.Context) ([]store.Employee, error) {
	return h.catalog.Employees(ctx)
}
