package command

import "github.com/example/promostock/internal/infrastructure/store"

// BatchTuple is one (item, size, quantity) selection inside a batch.
type BatchTuple struct {
	ItemID   string `json:"item_id"`
	SizeID   string `json:"item_size_id"`
	Quantity int    `json:"quantity"`
}

// ApplyBatch applies one movement kind for one promoter across a set of
// items, one independent ledger transaction per tuple.
type ApplyBatch struct {
	Kind       store.MovementKind `json:"transaction_type"`
	PromoterID string             `json:"promoter_id,omitempty"`
	EmployeeID string             `json:"employee_id"`
	Note       string             `json:"notes,omitempty"`
	Tuples     []BatchTuple       `json:"tuples"`
}

// LinkSharedItem makes an existing item visible from another brand.
type LinkSharedItem struct {
	ItemID  string `json:"item_id"`
	BrandID string `json:"brand_id"`
}

// UnlinkSharedItem removes a brand's view of a shared item.
type UnlinkSharedItem struct {
	ItemID  string `json:"item_id"`
	BrandID string `json:"brand_id"`
}

// BatchSuccess records one committed tuple.
type BatchSuccess struct {
	Tuple      BatchTuple `json:"tuple"`
	MovementID string     `json:"movement_id"`
}

// BatchFailure records one rejected tuple and why.
type BatchFailure struct {
	Tuple  BatchTuple `json:"tuple"`
	Reason string     `json:"reason"`
}

// BatchResult reports every tuple's outcome. Partial success is an expected
// state, not an error: committed tuples stay committed when a later tuple
// fails.
type BatchResult struct {
	Succeeded []BatchSuccess `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}
