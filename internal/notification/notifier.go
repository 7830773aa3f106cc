package notification

import (
	"context"

	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
)

// ItemChange is the wire envelope published for every committed movement and
// every item metadata update, keyed by item id so the broker preserves
// per-item order.
type ItemChange struct {
	ItemID     string `json:"item_id"`
	Reason     string `json:"reason"`
	MovementID string `json:"movement_id,omitempty"`
}

const ReasonMetadata = "metadata"

// Notifier turns item changes into ItemUpdate broadcasts. It recomputes the
// item's projection at delivery time, so even a redelivered change carries
// current state. It doubles as the recorder's and catalog's change publisher
// in single-binary mode, bypassing the broker.
type Notifier struct {
	projector *stock.Projector
	hub       *Hub
}

func NewNotifier(projector *stock.Projector, hub *Hub) *Notifier {
	return &Notifier{projector: projector, hub: hub}
}

// Notify projects the item and broadcasts the update to its observers.
func (n *Notifier) Notify(ctx context.Context, itemID, reason string) error {
	quantities, err := n.projector.Project(ctx, itemID)
	if err != nil {
		return err
	}
	n.hub.Broadcast(ItemUpdate{
		ItemID:     itemID,
		Reason:     reason,
		Quantities: quantities,
	})
	return nil
}

// MovementRecorded implements stock.ChangePublisher.
func (n *Notifier) MovementRecorded(ctx context.Context, m *store.Movement) error {
	return n.Notify(ctx, m.ItemID, string(m.Kind))
}

// ItemTouched implements catalog.ChangePublisher.
func (n *Notifier) ItemTouched(ctx context.Context, itemID string) error {
	return n.Notify(ctx, itemID, ReasonMetadata)
}
