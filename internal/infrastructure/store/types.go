package store

import (
	"time"
)

// MovementKind identifies how a movement changes a size's counters.
type MovementKind string

const (
	KindTakeOut MovementKind = "take_out"
	KindReturn  MovementKind = "return"
	KindBurn    MovementKind = "burn"
	KindRestock MovementKind = "restock"
)

// Valid reports whether k is one of the four movement kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case KindTakeOut, KindReturn, KindBurn, KindRestock:
		return true
	}
	return false
}

// NeedsPromoter reports whether a movement of this kind must reference a promoter.
// Restock is the only kind that moves stock without a promoter on the other end.
func (k MovementKind) NeedsPromoter() bool {
	return k != KindRestock
}

// Movement is one appended ledger entry. Rows are immutable after creation;
// Seq is assigned by the store and is strictly increasing across commits,
// which gives observers a per-item ordering key.
type Movement struct {
	Seq        int64        `json:"seq"`
	ID         string       `json:"id"`
	Kind       MovementKind `json:"transaction_type"`
	ItemID     string       `json:"item_id"`
	SizeID     string       `json:"item_size_id"`
	Quantity   int          `json:"quantity"`
	PromoterID string       `json:"promoter_id,omitempty"`
	EmployeeID string       `json:"employee_id"`
	Note       string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// SizeCounters is the per-(item, size) stock bucket. The three counters obey
// available + in_circulation + destroyed = original, where destroyed is the
// running total of burns.
type SizeCounters struct {
	ID            string `json:"id"`
	ItemID        string `json:"item_id"`
	Size          string `json:"size"`
	Original      int    `json:"original_quantity"`
	Available     int    `json:"available_quantity"`
	InCirculation int    `json:"in_circulation"`
}

// Destroyed returns the quantity permanently removed from this size to date.
func (s SizeCounters) Destroyed() int {
	return s.Original - s.Available - s.InCirculation
}

// Item is catalog metadata for one physical article. BrandID is the primary
// owning brand; additional brands see the item through SharedLink rows.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProductCode string    `json:"product_id"`
	BrandID     string    `json:"brand_id"`
	IsShared    bool      `json:"is_shared"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

// SharedLink makes an item visible from an additional brand. Present only
// while the item's IsShared flag is set.
type SharedLink struct {
	ID      string `json:"id"`
	ItemID  string `json:"item_id"`
	BrandID string `json:"brand_id"`
}

type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

type Promoter struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
}

type Employee struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Initials     string    `json:"initials"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
