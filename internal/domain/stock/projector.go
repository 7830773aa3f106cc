package stock

import (
	"context"

	"github.com/example/promostock/internal/infrastructure/store"
)

// ItemQuantities is the aggregate view of one item across all of its sizes.
type ItemQuantities struct {
	ItemID        string `json:"item_id"`
	Original      int    `json:"original"`
	Available     int    `json:"available"`
	InCirculation int    `json:"in_circulation"`
	Total         int    `json:"total"`
}

// Projector derives item-level quantities by summing the item's size rows.
// It is a pure read over committed counter state: concurrent with an
// in-flight movement a caller sees either the pre- or post-state, never a
// mixture, because a movement touches exactly one size row.
type Projector struct {
	ledger store.LedgerStore
}

func NewProjector(ledger store.LedgerStore) *Projector {
	return &Projector{ledger: ledger}
}

func (p *Projector) Project(ctx context.Context, itemID string) (ItemQuantities, error) {
	sizes, err := p.ledger.SizesByItem(ctx, itemID)
	if err != nil {
		return ItemQuantities{}, err
	}

	q := ItemQuantities{ItemID: itemID}
	for _, size := range sizes {
		q.Original += size.Original
		q.Available += size.Available
		q.InCirculation += size.InCirculation
	}
	q.Total = q.Available + q.InCirculation
	return q, nil
}
