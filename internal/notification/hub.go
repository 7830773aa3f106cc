package notification

import (
	"sync"

	"github.com/example/promostock/internal/domain/stock"
)

// ItemUpdate is what an observer watching an item receives: the item's full
// projected quantities, stamped with a per-item sequence number.
type ItemUpdate struct {
	ItemID     string               `json:"item_id"`
	Seq        int64                `json:"seq"`
	Reason     string               `json:"reason"`
	Quantities stock.ItemQuantities `json:"quantities"`
}

// Hub fans item updates out to subscribed observers, in any brand's view of
// the item. Updates for the same item are stamped with an increasing
// sequence under the hub lock and a subscriber never sees the sequence go
// backwards, so a slow redelivery cannot overwrite fresher state.
type Hub struct {
	mu   sync.Mutex
	seq  map[string]int64
	subs map[string]map[*Subscriber]struct{}
}

// Subscriber receives updates for one item. The channel is buffered; when an
// observer falls behind, older updates are dropped in favor of newer ones.
// Every update carries the full projected state, so the latest one is always
// sufficient.
type Subscriber struct {
	hub    *Hub
	itemID string
	ch     chan ItemUpdate
	last   int64
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		seq:  make(map[string]int64),
		subs: make(map[string]map[*Subscriber]struct{}),
	}
}

// Subscribe registers an observer for one item.
func (h *Hub) Subscribe(itemID string, buffer int) *Subscriber {
	if buffer <= 0 {
		buffer = 8
	}
	sub := &Subscriber{hub: h, itemID: itemID, ch: make(chan ItemUpdate, buffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[itemID] == nil {
		h.subs[itemID] = make(map[*Subscriber]struct{})
	}
	h.subs[itemID][sub] = struct{}{}
	return sub
}

// Broadcast stamps the update with the item's next sequence number and
// delivers it to every subscriber of that item.
func (h *Hub) Broadcast(update ItemUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq[update.ItemID]++
	update.Seq = h.seq[update.ItemID]

	for sub := range h.subs[update.ItemID] {
		if sub.closed || update.Seq <= sub.last {
			continue
		}
		sub.last = update.Seq
		select {
		case sub.ch <- update:
		default:
			// Buffer full: make room by discarding the oldest queued
			// update, then deliver the new one.
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- update:
			default:
			}
		}
	}
}

// SubscriberCount reports how many observers watch the item.
func (h *Hub) SubscriberCount(itemID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[itemID])
}

// Updates is the subscriber's receive channel. It is closed by Close.
func (s *Subscriber) Updates() <-chan ItemUpdate {
	return s.ch
}

// Close unregisters the subscriber and closes its channel.
func (s *Subscriber) Close() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	delete(s.hub.subs[s.itemID], s)
	if len(s.hub.subs[s.itemID]) == 0 {
		delete(s.hub.subs, s.itemID)
	}
	close(s.ch)
}
