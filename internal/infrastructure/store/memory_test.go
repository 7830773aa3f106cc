package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSize(t *testing.T, s *MemoryStore, id, itemID string, available int) {
	t.Helper()
	require.NoError(t, s.InsertSize(context.Background(), &SizeCounters{
		ID: id, ItemID: itemID, Size: "M", Original: available, Available: available,
	}))
}

// ============================================
// ApplyMovement Tests
// ============================================

func TestMemoryStore_ApplyMovement_AssignsSeqAndID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 10)

	first, err := s.ApplyMovement(ctx, &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-1", Quantity: 1, PromoterID: "prom-1"})
	require.NoError(t, err)
	second, err := s.ApplyMovement(ctx, &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-1", Quantity: 1, PromoterID: "prom-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.Seq, first.Seq)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryStore_ApplyMovement_UnknownSize(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.ApplyMovement(context.Background(), &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-nope", Quantity: 1})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ApplyMovement_SizeItemMismatch(t *testing.T) {
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 10)

	_, err := s.ApplyMovement(context.Background(), &Movement{Kind: KindTakeOut, ItemID: "item-other", SizeID: "s-1", Quantity: 1})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ApplyMovement_RejectsOverdraw(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 3)

	_, err := s.ApplyMovement(ctx, &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-1", Quantity: 4})
	assert.ErrorIs(t, err, ErrInsufficientAvailable)

	_, err = s.ApplyMovement(ctx, &Movement{Kind: KindReturn, ItemID: "item-1", SizeID: "s-1", Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientCirculation)

	_, err = s.ApplyMovement(ctx, &Movement{Kind: KindBurn, ItemID: "item-1", SizeID: "s-1", Quantity: 1})
	assert.ErrorIs(t, err, ErrInsufficientCirculation)

	// Rejections leave no movement behind.
	movements, err := s.MovementsByItem(ctx, "item-1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

// ============================================
// Movement Query Tests
// ============================================

func TestMemoryStore_MovementsByItem_NewestFirstWithPaging(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 100)

	var seqs []int64
	for i := 0; i < 5; i++ {
		m, err := s.ApplyMovement(ctx, &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-1", Quantity: 1, PromoterID: "prom-1"})
		require.NoError(t, err)
		seqs = append(seqs, m.Seq)
	}

	page, err := s.MovementsByItem(ctx, "item-1", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, seqs[4], page[0].Seq)
	assert.Equal(t, seqs[3], page[1].Seq)

	page, err = s.MovementsByItem(ctx, "item-1", 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, seqs[0], page[0].Seq)

	page, err = s.MovementsByItem(ctx, "item-1", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemoryStore_MovementsByPromoter_OldestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 100)

	for i := 1; i <= 3; i++ {
		_, err := s.ApplyMovement(ctx, &Movement{Kind: KindTakeOut, ItemID: "item-1", SizeID: "s-1", Quantity: i, PromoterID: "prom-1"})
		require.NoError(t, err)
	}

	movements, err := s.MovementsByPromoter(ctx, "prom-1")
	require.NoError(t, err)
	require.Len(t, movements, 3)
	assert.Equal(t, 1, movements[0].Quantity)
	assert.Equal(t, 3, movements[2].Quantity)
}

// ============================================
// Catalog Tests
// ============================================

func TestMemoryStore_InsertSize_DuplicateID(t *testing.T) {
	s := NewMemoryStore()
	seedSize(t, s, "s-1", "item-1", 10)

	err := s.InsertSize(context.Background(), &SizeCounters{ID: "s-1", ItemID: "item-1", Size: "L"})

	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMemoryStore_ItemsByBrand_IncludesSharedIn(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateItem(ctx, &Item{ID: "item-own", Name: "Own", BrandID: "brand-b", IsActive: true}))
	require.NoError(t, s.CreateItem(ctx, &Item{ID: "item-shared", Name: "Shared", BrandID: "brand-a", IsActive: true}))
	require.NoError(t, s.InsertSharedLink(ctx, "item-shared", "brand-b"))

	items, err := s.ItemsByBrand(ctx, "brand-b")

	require.NoError(t, err)
	require.Len(t, items, 2)
	var ids []string
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.ElementsMatch(t, []string{"item-own", "item-shared"}, ids)
}

func TestMemoryStore_EmployeeByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateEmployee(ctx, &Employee{ID: "emp-1", FullName: "Anna Berg", Initials: "AB", IsActive: true}))

	found, err := s.EmployeeByName(ctx, "Anna Berg")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", found.ID)

	_, err = s.EmployeeByName(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

// ============================================
// MovementKind Tests
// ============================================

func TestMovementKind_Valid(t *testing.T) {
	for _, kind := range []MovementKind{KindTakeOut, KindReturn, KindBurn, KindRestock} {
		assert.True(t, kind.Valid(), "kind %s", kind)
	}
	assert.False(t, MovementKind("teleport").Valid())
	assert.False(t, MovementKind("").Valid())
}

func TestMovementKind_NeedsPromoter(t *testing.T) {
	assert.True(t, KindTakeOut.NeedsPromoter())
	assert.True(t, KindReturn.NeedsPromoter())
	assert.True(t, KindBurn.NeedsPromoter())
	assert.False(t, KindRestock.NeedsPromoter())
}

func TestSizeCounters_Destroyed(t *testing.T) {
	size := SizeCounters{Original: 10, Available: 5, InCirculation: 3}
	assert.Equal(t, 2, size.Destroyed())
}
