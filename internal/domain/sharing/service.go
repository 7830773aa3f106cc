package sharing

import (
	"context"
	"errors"

	"github.com/example/promostock/internal/infrastructure/store"
)

var (
	// ErrAlreadyLinked means the brand already carries the item.
	ErrAlreadyLinked = errors.New("item already linked to brand")

	// ErrPrimaryBrand means the target brand is the item's own primary
	// brand, which sees the item without a link.
	ErrPrimaryBrand = errors.New("brand is the item's primary brand")
)

// Service manages shared-item links. An item has exactly one set of size
// counters no matter how many brands link to it; linking only changes
// visibility, never quantities.
type Service struct {
	catalog store.CatalogStore
}

func NewService(catalog store.CatalogStore) *Service {
	return &Service{catalog: catalog}
}

// Link makes an item visible from an additional brand. The first share also
// creates a link for the item's primary brand, so the original view keeps
// seeing an item it already displayed.
func (s *Service) Link(ctx context.Context, itemID, brandID string) error {
	item, err := s.catalog.ItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.BrandID == brandID {
		return ErrPrimaryBrand
	}

	if !item.IsShared {
		if err := s.catalog.SetItemShared(ctx, itemID, true); err != nil {
			return err
		}
		if err := s.catalog.InsertSharedLink(ctx, itemID, item.BrandID); err != nil && !errors.Is(err, store.ErrDuplicateKey) {
			return err
		}
	}

	if err := s.catalog.InsertSharedLink(ctx, itemID, brandID); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

// Unlink removes a brand's link. When the last link disappears the item
// degrades back to a plain single-brand item.
func (s *Service) Unlink(ctx context.Context, itemID, brandID string) error {
	if err := s.catalog.DeleteSharedLink(ctx, itemID, brandID); err != nil {
		return err
	}

	remaining, err := s.catalog.SharedBrands(ctx, itemID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return s.catalog.SetItemShared(ctx, itemID, false)
	}
	return nil
}

// Brands returns the ids of every brand the item is shared with.
func (s *Service) Brands(ctx context.Context, itemID string) ([]string, error) {
	return s.catalog.SharedBrands(ctx, itemID)
}
