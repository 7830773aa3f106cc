package catalog

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/promostock/internal/infrastructure/store"
)

var (
	ErrMissingName  = errors.New("name is required")
	ErrMissingBrand = errors.New("brand is required")
	ErrNoSizes      = errors.New("item needs at least one size")
	ErrBadQuantity  = errors.New("size quantity must not be negative")
)

// ChangePublisher is notified after item metadata changes so observers
// viewing the item can refresh.
type ChangePublisher interface {
	ItemTouched(ctx context.Context, itemID string) error
}

// SizeSpec is one size bucket requested at item creation.
type SizeSpec struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type CreateItemRequest struct {
	Name        string     `json:"name"`
	ProductCode string     `json:"product_id"`
	BrandID     string     `json:"brand_id"`
	CreatedBy   string     `json:"created_by,omitempty"`
	Sizes       []SizeSpec `json:"sizes"`
}

// Service owns item, brand and promoter metadata. Size rows are created
// here (a size starts with original = available = quantity and nothing in
// circulation) but their counters are only ever mutated by the ledger.
type Service struct {
	catalog   store.CatalogStore
	ledger    store.LedgerStore
	publisher ChangePublisher
	log       zerolog.Logger
}

func NewService(catalog store.CatalogStore, ledger store.LedgerStore, publisher ChangePublisher, log zerolog.Logger) *Service {
	return &Service{catalog: catalog, ledger: ledger, publisher: publisher, log: log}
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*store.Item, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if req.BrandID == "" {
		return nil, ErrMissingBrand
	}
	if len(req.Sizes) == 0 {
		return nil, ErrNoSizes
	}
	for _, spec := range req.Sizes {
		if spec.Quantity < 0 {
			return nil, ErrBadQuantity
		}
	}

	item := &store.Item{
		Name:        req.Name,
		ProductCode: req.ProductCode,
		BrandID:     req.BrandID,
		IsActive:    true,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.catalog.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	for _, spec := range req.Sizes {
		size := &store.SizeCounters{
			ItemID:    item.ID,
			Size:      spec.Size,
			Original:  spec.Quantity,
			Available: spec.Quantity,
		}
		if err := s.ledger.InsertSize(ctx, size); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// AddSize attaches a new size bucket to an existing item.
func (s *Service) AddSize(ctx context.Context, itemID, size string, quantity int) (*store.SizeCounters, error) {
	if quantity < 0 {
		return nil, ErrBadQuantity
	}
	if _, err := s.catalog.ItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	counters := &store.SizeCounters{
		ItemID:    itemID,
		Size:      size,
		Original:  quantity,
		Available: quantity,
	}
	if err := s.ledger.InsertSize(ctx, counters); err != nil {
		return nil, err
	}
	s.notify(ctx, itemID)
	return counters, nil
}

type UpdateItemRequest struct {
	Name        string `json:"name"`
	ProductCode string `json:"product_id"`
}

func (s *Service) UpdateItem(ctx context.Context, itemID string, req UpdateItemRequest) (*store.Item, error) {
	item, err := s.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.ProductCode != "" {
		item.ProductCode = req.ProductCode
	}
	if err := s.catalog.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.notify(ctx, itemID)
	return item, nil
}

func (s *Service) SetItemActive(ctx context.Context, itemID string, active bool) error {
	item, err := s.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	item.IsActive = active
	if err := s.catalog.UpdateItem(ctx, item); err != nil {
		return err
	}
	s.notify(ctx, itemID)
	return nil
}

func (s *Service) CreateBrand(ctx context.Context, name, createdBy string) (*store.Brand, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	brand := &store.Brand{Name: name, IsActive: true, CreatedBy: createdBy}
	if err := s.catalog.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) SetBrandActive(ctx context.Context, brandID string, active bool) error {
	brand, err := s.catalog.BrandByID(ctx, brandID)
	if err != nil {
		return err
	}
	brand.IsActive = active
	return s.catalog.UpdateBrand(ctx, brand)
}

func (s *Service) CreatePromoter(ctx context.Context, p *store.Promoter) (*store.Promoter, error) {
	if p.Name == "" {
		return nil, ErrMissingName
	}
	p.IsActive = true
	if err := s.catalog.CreatePromoter(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) SetPromoterActive(ctx context.Context, promoterID string, active bool) error {
	promoter, err := s.catalog.PromoterByID(ctx, promoterID)
	if err != nil {
		return err
	}
	promoter.IsActive = active
	return s.catalog.UpdatePromoter(ctx, promoter)
}

func (s *Service) notify(ctx context.Context, itemID string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.ItemTouched(ctx, itemID); err != nil {
		s.log.Error().Err(err).Str("item_id", itemID).Msg("failed to publish item change")
	}
}
