package stock

import (
	"context"
	"sort"

	"github.com/example/promostock/internal/infrastructure/store"
)

// Holding is one (item, size) a promoter currently has checked out.
type Holding struct {
	ItemID   string `json:"item_id"`
	SizeID   string `json:"item_size_id"`
	Quantity int    `json:"quantity"`
}

// Reconciler reconstructs a promoter's current holdings by replaying the
// movement log. There is no maintained balance table for promoter holdings:
// the full replay keeps the log as the single place the conservation
// invariant lives, at the cost of read work proportional to the promoter's
// history.
type Reconciler struct {
	ledger store.LedgerStore
}

func NewReconciler(ledger store.LedgerStore) *Reconciler {
	return &Reconciler{ledger: ledger}
}

// Holdings returns the promoter's net checked-out quantities grouped by
// (item, size), keeping only strictly positive nets. Safe to call at any
// time; the result reflects whatever movements are visible at query time.
func (r *Reconciler) Holdings(ctx context.Context, promoterID string) ([]Holding, error) {
	movements, err := r.ledger.MovementsByPromoter(ctx, promoterID)
	if err != nil {
		return nil, err
	}

	type key struct{ itemID, sizeID string }
	net := make(map[key]int)
	for _, m := range movements {
		k := key{m.ItemID, m.SizeID}
		switch m.Kind {
		case store.KindTakeOut:
			net[k] += m.Quantity
		case store.KindReturn, store.KindBurn:
			net[k] -= m.Quantity
		}
	}

	var holdings []Holding
	for k, qty := range net {
		if qty > 0 {
			holdings = append(holdings, Holding{ItemID: k.itemID, SizeID: k.sizeID, Quantity: qty})
		}
	}
	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].ItemID != holdings[j].ItemID {
			return holdings[i].ItemID < holdings[j].ItemID
		}
		return holdings[i].SizeID < holdings[j].SizeID
	})
	return holdings, nil
}
