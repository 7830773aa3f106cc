package stock

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/promostock/internal/infrastructure/store"
)

// maxConflictRetries bounds how often a lost conditional update is retried
// before ErrConflictRetryable reaches the caller.
const maxConflictRetries = 3

// EmployeeDirectory resolves an acting employee id to an employee record.
type EmployeeDirectory interface {
	EmployeeByID(ctx context.Context, id string) (*store.Employee, error)
}

// ChangePublisher receives every committed movement. In production this is
// the Kafka producer keyed by item id; tests and the single-binary mode plug
// in the in-process hub directly.
type ChangePublisher interface {
	MovementRecorded(ctx context.Context, m *store.Movement) error
}

// RecordRequest describes one requested stock movement.
type RecordRequest struct {
	Kind       store.MovementKind `json:"transaction_type"`
	ItemID     string             `json:"item_id"`
	SizeID     string             `json:"item_size_id"`
	Quantity   int                `json:"quantity"`
	EmployeeID string             `json:"employee_id"`
	PromoterID string             `json:"promoter_id,omitempty"`
	Note       string             `json:"notes,omitempty"`
}

// Recorder is the single entry point for stock movements. It validates the
// request, then hands the counter mutation and the log append to the ledger
// store as one atomic unit. Counters are never written anywhere else.
type Recorder struct {
	ledger    store.LedgerStore
	employees EmployeeDirectory
	publisher ChangePublisher
	log       zerolog.Logger
}

func NewRecorder(ledger store.LedgerStore, employees EmployeeDirectory, publisher ChangePublisher, log zerolog.Logger) *Recorder {
	return &Recorder{
		ledger:    ledger,
		employees: employees,
		publisher: publisher,
		log:       log,
	}
}

// Record validates and applies one movement, returning the persisted row.
// Validation failures leave no trace; a store failure mid-mutation leaves no
// partial effect (the store guarantees atomicity of mutate+append).
func (r *Recorder) Record(ctx context.Context, req RecordRequest) (*store.Movement, error) {
	if !req.Kind.Valid() {
		return nil, ErrUnknownKind
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if req.EmployeeID == "" {
		return nil, ErrUnauthenticated
	}
	employee, err := r.employees.EmployeeByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, ErrUnauthenticated
	}
	if req.Kind.NeedsPromoter() && req.PromoterID == "" {
		return nil, ErrMissingPromoter
	}
	if !req.Kind.NeedsPromoter() {
		req.PromoterID = ""
	}

	var stored *store.Movement
	for attempt := 1; ; attempt++ {
		movement := store.Movement{
			Kind:       req.Kind,
			ItemID:     req.ItemID,
			SizeID:     req.SizeID,
			Quantity:   req.Quantity,
			PromoterID: req.PromoterID,
			EmployeeID: req.EmployeeID,
			Note:       req.Note,
		}
		stored, err = r.ledger.ApplyMovement(ctx, &movement)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrConflictRetryable) || attempt >= maxConflictRetries {
			return nil, err
		}
		r.log.Debug().
			Str("size_id", req.SizeID).
			Int("attempt", attempt).
			Msg("conditional update lost a race, retrying")
	}

	if r.publisher != nil {
		// The movement is durable at this point; a failed publish must not
		// turn a committed mutation into a reported failure. Delivery is
		// at-least-once via log replay on the consumer side.
		if err := r.publisher.MovementRecorded(ctx, stored); err != nil {
			r.log.Error().Err(err).
				Str("movement_id", stored.ID).
				Str("item_id", stored.ItemID).
				Msg("failed to publish movement")
		}
	}

	return stored, nil
}
