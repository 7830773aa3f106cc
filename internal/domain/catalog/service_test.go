package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promostock/internal/infrastructure/store"
)

type touchRecorder struct {
	mu      sync.Mutex
	touched []string
}

func (r *touchRecorder) ItemTouched(ctx context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, itemID)
	return nil
}

func newTestService(t *testing.T) (*Service, *store.MemoryStore, *touchRecorder) {
	t.Helper()
	mem := store.NewMemoryStore()
	publisher := &touchRecorder{}
	return NewService(mem, mem, publisher, zerolog.Nop()), mem, publisher
}

func createItemReq() CreateItemRequest {
	return CreateItemRequest{
		Name:        "Hoodie",
		ProductCode: "HD-01",
		BrandID:     "brand-a",
		CreatedBy:   "emp-1",
		Sizes: []SizeSpec{
			{Size: "M", Quantity: 10},
			{Size: "L", Quantity: 5},
		},
	}
}

// ============================================
// CreateItem Tests
// ============================================

func TestService_CreateItem_CreatesSizesWithFullAvailability(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, createItemReq())

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.True(t, item.IsActive)
	assert.False(t, item.IsShared)

	sizes, err := mem.SizesByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	for _, size := range sizes {
		assert.Equal(t, size.Original, size.Available)
		assert.Zero(t, size.InCirculation)
	}
}

func TestService_CreateItem_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := createItemReq()
	req.Name = ""
	_, err := svc.CreateItem(ctx, req)
	assert.ErrorIs(t, err, ErrMissingName)

	req = createItemReq()
	req.BrandID = ""
	_, err = svc.CreateItem(ctx, req)
	assert.ErrorIs(t, err, ErrMissingBrand)

	req = createItemReq()
	req.Sizes = nil
	_, err = svc.CreateItem(ctx, req)
	assert.ErrorIs(t, err, ErrNoSizes)

	req = createItemReq()
	req.Sizes[0].Quantity = -1
	_, err = svc.CreateItem(ctx, req)
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestService_CreateItem_ZeroQuantitySizeAllowed(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	req := createItemReq()
	req.Sizes = []SizeSpec{{Size: "XL", Quantity: 0}}
	item, err := svc.CreateItem(ctx, req)

	require.NoError(t, err)
	sizes, err := mem.SizesByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.Zero(t, sizes[0].Available)
}

// ============================================
// AddSize Tests
// ============================================

func TestService_AddSize_NotifiesObservers(t *testing.T) {
	svc, _, publisher := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, createItemReq())
	require.NoError(t, err)

	size, err := svc.AddSize(ctx, item.ID, "XL", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, size.Original)
	assert.Equal(t, 3, size.Available)
	assert.Contains(t, publisher.touched, item.ID)
}

func TestService_AddSize_UnknownItem(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddSize(context.Background(), "item-nope", "M", 5)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_AddSize_NegativeQuantity(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddSize(context.Background(), "item-1", "M", -5)

	assert.ErrorIs(t, err, ErrBadQuantity)
}

// ============================================
// UpdateItem Tests
// ============================================

func TestService_UpdateItem_ChangesMetadataAndNotifies(t *testing.T) {
	svc, mem, publisher := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, createItemReq())
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, item.ID, UpdateItemRequest{Name: "Zip Hoodie"})

	require.NoError(t, err)
	assert.Equal(t, "Zip Hoodie", updated.Name)
	assert.Equal(t, "HD-01", updated.ProductCode)

	stored, err := mem.ItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zip Hoodie", stored.Name)
	assert.Contains(t, publisher.touched, item.ID)
}

func TestService_SetItemActive(t *testing.T) {
	svc, mem, publisher := newTestService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, createItemReq())
	require.NoError(t, err)

	require.NoError(t, svc.SetItemActive(ctx, item.ID, false))

	stored, err := mem.ItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Contains(t, publisher.touched, item.ID)
}

// ============================================
// Brand and Promoter Tests
// ============================================

func TestService_CreateBrand(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, "Alpha", "emp-1")
	require.NoError(t, err)
	assert.NotEmpty(t, brand.ID)
	assert.True(t, brand.IsActive)

	_, err = svc.CreateBrand(ctx, "", "emp-1")
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestService_SetBrandActive(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	brand, err := svc.CreateBrand(ctx, "Alpha", "emp-1")
	require.NoError(t, err)

	require.NoError(t, svc.SetBrandActive(ctx, brand.ID, false))

	stored, err := mem.BrandByID(ctx, brand.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	err = svc.SetBrandActive(ctx, "brand-nope", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_SetPromoterActive(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	promoter, err := svc.CreatePromoter(ctx, &store.Promoter{Name: "Pia Nord"})
	require.NoError(t, err)

	require.NoError(t, svc.SetPromoterActive(ctx, promoter.ID, false))

	stored, err := mem.PromoterByID(ctx, promoter.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestService_CreatePromoter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	promoter, err := svc.CreatePromoter(ctx, &store.Promoter{Name: "Pia Nord"})
	require.NoError(t, err)
	assert.NotEmpty(t, promoter.ID)
	assert.True(t, promoter.IsActive)

	_, err = svc.CreatePromoter(ctx, &store.Promoter{})
	assert.ErrorIs(t, err, ErrMissingName)
}
