package query

import (
	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
)

// ItemDetail is one item with its size buckets and aggregate quantities.
type ItemDetail struct {
	Item       store.Item           `json:"item"`
	Sizes      []store.SizeCounters `json:"sizes"`
	Quantities stock.ItemQuantities `json:"quantities"`
}

// HoldingDetail is one holdings entry enriched with item and size names for
// display. Grouping by item is the caller's business.
type HoldingDetail struct {
	stock.Holding
	ItemName string `json:"item_name,omitempty"`
	Size     string `json:"size,omitempty"`
}
