package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/promostock/internal/domain/stock"
	"github.com/example/promostock/internal/infrastructure/store"
)

func drain(t *testing.T, sub *Subscriber, n int) []ItemUpdate {
	t.Helper()
	var out []ItemUpdate
	for i := 0; i < n; i++ {
		select {
		case update := <-sub.Updates():
			out = append(out, update)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for update %d of %d", i+1, n)
		}
	}
	return out
}

// ============================================
// Hub Tests
// ============================================

func TestHub_Broadcast_PerItemOrder(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("item-1", 8)
	defer sub.Close()

	for i := 0; i < 3; i++ {
		hub.Broadcast(ItemUpdate{ItemID: "item-1", Reason: "take_out"})
	}

	updates := drain(t, sub, 3)
	assert.EqualValues(t, 1, updates[0].Seq)
	assert.EqualValues(t, 2, updates[1].Seq)
	assert.EqualValues(t, 3, updates[2].Seq)
}

func TestHub_Broadcast_IndependentSequencesPerItem(t *testing.T) {
	hub := NewHub()
	subA := hub.Subscribe("item-a", 8)
	defer subA.Close()
	subB := hub.Subscribe("item-b", 8)
	defer subB.Close()

	hub.Broadcast(ItemUpdate{ItemID: "item-a"})
	hub.Broadcast(ItemUpdate{ItemID: "item-a"})
	hub.Broadcast(ItemUpdate{ItemID: "item-b"})

	assert.EqualValues(t, 2, drain(t, subA, 2)[1].Seq)
	assert.EqualValues(t, 1, drain(t, subB, 1)[0].Seq)
}

func TestHub_Broadcast_OnlyReachesItemSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("item-1", 8)
	defer sub.Close()

	hub.Broadcast(ItemUpdate{ItemID: "item-other"})

	select {
	case update := <-sub.Updates():
		t.Fatalf("unexpected update for %s", update.ItemID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Broadcast_SlowSubscriberKeepsNewest(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("item-1", 2)
	defer sub.Close()

	// Four updates into a buffer of two: the oldest are discarded, the
	// newest survives, and the sequence never goes backwards.
	for i := 0; i < 4; i++ {
		hub.Broadcast(ItemUpdate{ItemID: "item-1"})
	}

	updates := drain(t, sub, 2)
	assert.Less(t, updates[0].Seq, updates[1].Seq)
	assert.EqualValues(t, 4, updates[1].Seq)
}

func TestHub_SubscriberCount(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, hub.SubscriberCount("item-1"))

	sub1 := hub.Subscribe("item-1", 8)
	sub2 := hub.Subscribe("item-1", 8)
	assert.Equal(t, 2, hub.SubscriberCount("item-1"))

	sub1.Close()
	assert.Equal(t, 1, hub.SubscriberCount("item-1"))

	sub2.Close()
	assert.Equal(t, 0, hub.SubscriberCount("item-1"))
}

func TestHub_Close_Idempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("item-1", 8)

	sub.Close()
	sub.Close()

	_, open := <-sub.Updates()
	assert.False(t, open)
}

func TestHub_Broadcast_AfterClose(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("item-1", 8)
	sub.Close()

	hub.Broadcast(ItemUpdate{ItemID: "item-1"})

	_, open := <-sub.Updates()
	assert.False(t, open)
}

// ============================================
// Notifier Tests
// ============================================

func TestNotifier_Notify_CarriesCurrentProjection(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	require.NoError(t, mem.InsertSize(ctx, &store.SizeCounters{ID: "s-1", ItemID: "item-1", Size: "M", Original: 10, Available: 6, InCirculation: 4}))

	hub := NewHub()
	notifier := NewNotifier(stock.NewProjector(mem), hub)
	sub := hub.Subscribe("item-1", 8)
	defer sub.Close()

	require.NoError(t, notifier.Notify(ctx, "item-1", "take_out"))

	update := drain(t, sub, 1)[0]
	assert.Equal(t, "take_out", update.Reason)
	assert.Equal(t, 6, update.Quantities.Available)
	assert.Equal(t, 4, update.Quantities.InCirculation)
}

func TestNotifier_MovementRecorded_UsesKindAsReason(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	hub := NewHub()
	notifier := NewNotifier(stock.NewProjector(mem), hub)
	sub := hub.Subscribe("item-1", 8)
	defer sub.Close()

	err := notifier.MovementRecorded(ctx, &store.Movement{ItemID: "item-1", Kind: store.KindRestock})

	require.NoError(t, err)
	assert.Equal(t, string(store.KindRestock), drain(t, sub, 1)[0].Reason)
}

func TestNotifier_ItemTouched_MetadataReason(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	notifier := NewNotifier(stock.NewProjector(store.NewMemoryStore()), hub)
	sub := hub.Subscribe("item-1", 8)
	defer sub.Close()

	require.NoError(t, notifier.ItemTouched(ctx, "item-1"))

	assert.Equal(t, ReasonMetadata, drain(t, sub, 1)[0].Reason)
}
