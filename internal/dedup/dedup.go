// Package dedup prevents reprocessing of redelivered webhook events. The
// gate keeps a bounded, TTL-limited set of seen message identifiers with
// LRU eviction, so memory stays flat under sustained traffic.
package dedup

import (
	"container/list"
	"sync"
	"time"
)

type entry struct {
	id        string
	expiresAt time.Time
}

// Gate is a concurrency-safe seen-message set. Check and mark happen under
// one lock so that two concurrent deliveries of the same identifier cannot
// both pass.
type Gate struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	order      *list.List // front = most recently seen
	now        func() time.Time
}

// NewGate creates a gate holding at most maxEntries identifiers, each
// remembered for ttl.
func NewGate(maxEntries int, ttl time.Duration) *Gate {
	return &Gate{
		maxEntries: maxEntries,
		ttl:        ttl,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (g *Gate) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.now = now
}

// FirstSeen atomically checks and marks the identifier. It returns true
// exactly once per identifier within the retention window; a second call
// (a redelivery) returns false.
func (g *Gate) FirstSeen(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if elem, ok := g.items[id]; ok {
		if now.Before(elem.Value.(*entry).expiresAt) {
			return false
		}
		g.removeLocked(elem)
	}

	elem := g.order.PushFront(&entry{id: id, expiresAt: now.Add(g.ttl)})
	g.items[id] = elem

	if g.order.Len() > g.maxEntries {
		if oldest := g.order.Back(); oldest != nil {
			g.removeLocked(oldest)
		}
	}
	return true
}

// Seen reports whether the identifier is currently marked, without
// marking it.
func (g *Gate) Seen(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	elem, ok := g.items[id]
	return ok && g.now().Before(elem.Value.(*entry).expiresAt)
}

// Len returns the number of identifiers currently held.
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.items)
}

func (g *Gate) removeLocked(elem *list.Element) {
	delete(g.items, elem.Value.(*entry).id)
	g.order.Remove(elem)
}
