package observe

import (
	"sync"

	"github.com/google/uuid"
)

// Hub fans out invalidation signals to subscribers. It carries no payload:
// a signal only means "the data behind your query may have changed, run the
// query again". Signals are coalesced per subscriber, so a burst of writes
// wakes each watcher at most once per requery.
type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]chan struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan struct{})}
}

// Subscribe registers a new subscriber and returns its token together with
// the signal channel. The channel has capacity one; a pending signal already
// covers any later ones.
func (h *Hub) Subscribe() (uuid.UUID, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.New()
	ch := make(chan struct{}, 1)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber. Unknown tokens are ignored.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Notify signals every subscriber without blocking. Subscribers that already
// have a pending signal are skipped.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the current number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
