package store

import "context"

// LedgerStore is the transactional home of size counters and the append-only
// movement log. ApplyMovement is the single write path for counters: the
// precondition check and the mutation execute as one atomic conditional
// update, in the same unit of work as the movement append. Implementations
// must never apply a partial effect.
type LedgerStore interface {
	// ApplyMovement mutates the size's counters per m.Kind and appends m.
	// It fills in m.ID, m.Seq and m.CreatedAt and returns the stored row.
	// Returns ErrNotFound, ErrInsufficientAvailable,
	// ErrInsufficientCirculation or ErrConflictRetryable.
	ApplyMovement(ctx context.Context, m *Movement) (*Movement, error)

	// InsertSize creates a new counter row for an item.
	InsertSize(ctx context.Context, size *SizeCounters) error

	SizeByID(ctx context.Context, sizeID string) (*SizeCounters, error)
	SizesByItem(ctx context.Context, itemID string) ([]SizeCounters, error)

	// MovementsByPromoter returns every movement referencing the promoter,
	// oldest first. Used by the holdings replay.
	MovementsByPromoter(ctx context.Context, promoterID string) ([]Movement, error)

	// MovementsByItem returns the item's movement history, newest first.
	MovementsByItem(ctx context.Context, itemID string, limit, offset int) ([]Movement, error)
}

// CatalogStore holds item, brand, promoter and employee metadata. Counters
// are never written through this interface.
type CatalogStore interface {
	CreateItem(ctx context.Context, item *Item) error
	ItemByID(ctx context.Context, id string) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	// ItemsByBrand lists items owned by the brand plus items shared into it.
	ItemsByBrand(ctx context.Context, brandID string) ([]Item, error)

	SetItemShared(ctx context.Context, itemID string, shared bool) error
	InsertSharedLink(ctx context.Context, itemID, brandID string) error
	DeleteSharedLink(ctx context.Context, itemID, brandID string) error
	SharedBrands(ctx context.Context, itemID string) ([]string, error)

	CreateBrand(ctx context.Context, b *Brand) error
	UpdateBrand(ctx context.Context, b *Brand) error
	Brands(ctx context.Context) ([]Brand, error)
	BrandByID(ctx context.Context, id string) (*Brand, error)
	CreatePromoter(ctx context.Context, p *Promoter) error
	UpdatePromoter(ctx context.Context, p *Promoter) error
	Promoters(ctx context.Context) ([]Promoter, error)
	PromoterByID(ctx context.Context, id string) (*Promoter, error)
	CreateEmployee(ctx context.Context, e *Employee) error
	Employees(ctx context.Context) ([]Employee, error)
	EmployeeByID(ctx context.Context, id string) (*Employee, error)
	EmployeeByName(ctx context.Context, fullName string) (*Employee, error)
}
