package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promostock/internal/infrastructure/store"
)

func newSeededLedger(t *testing.T) *store.MemoryStore {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.InsertSize(ctx, &store.SizeCounters{ID: "s-1", ItemID: "item-1", Size: "M", Original: 50, Available: 50}))
	require.NoError(t, mem.InsertSize(ctx, &store.SizeCounters{ID: "s-2", ItemID: "item-2", Size: "L", Original: 50, Available: 50}))
	return mem
}

func apply(t *testing.T, mem *store.MemoryStore, kind store.MovementKind, itemID, sizeID, promoterID string, qty int) {
	t.Helper()
	_, err := mem.ApplyMovement(context.Background(), &store.Movement{
		Kind:       kind,
		ItemID:     itemID,
		SizeID:     sizeID,
		Quantity:   qty,
		PromoterID: promoterID,
		EmployeeID: "emp-1",
	})
	require.NoError(t, err)
}

func TestReconciler_Holdings_ReplaysNetQuantities(t *testing.T) {
	mem := newSeededLedger(t)

	// take 5, take 3, return 2, burn 1: net 5 still out.
	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-1", 5)
	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-1", 3)
	apply(t, mem, store.KindReturn, "item-1", "s-1", "prom-1", 2)
	apply(t, mem, store.KindBurn, "item-1", "s-1", "prom-1", 1)

	holdings, err := NewReconciler(mem).Holdings(context.Background(), "prom-1")

	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, Holding{ItemID: "item-1", SizeID: "s-1", Quantity: 5}, holdings[0])
}

func TestReconciler_Holdings_DropsSettledPairs(t *testing.T) {
	mem := newSeededLedger(t)

	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-1", 4)
	apply(t, mem, store.KindReturn, "item-1", "s-1", "prom-1", 4)

	holdings, err := NewReconciler(mem).Holdings(context.Background(), "prom-1")

	require.NoError(t, err)
	assert.Empty(t, holdings)
}

func TestReconciler_Holdings_IgnoresOtherPromoters(t *testing.T) {
	mem := newSeededLedger(t)

	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-1", 2)
	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-2", 7)

	holdings, err := NewReconciler(mem).Holdings(context.Background(), "prom-1")

	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 2, holdings[0].Quantity)
}

func TestReconciler_Holdings_SortedByItemThenSize(t *testing.T) {
	mem := newSeededLedger(t)

	apply(t, mem, store.KindTakeOut, "item-2", "s-2", "prom-1", 1)
	apply(t, mem, store.KindTakeOut, "item-1", "s-1", "prom-1", 1)

	holdings, err := NewReconciler(mem).Holdings(context.Background(), "prom-1")

	require.NoError(t, err)
	require.Len(t, holdings, 2)
	assert.Equal(t, "item-1", holdings[0].ItemID)
	assert.Equal(t, "item-2", holdings[1].ItemID)
}

func TestReconciler_Holdings_EmptyHistory(t *testing.T) {
	holdings, err := NewReconciler(store.NewMemoryStore()).Holdings(context.Background(), "prom-unknown")

	require.NoError(t, err)
	assert.Empty(t, holdings)
}
