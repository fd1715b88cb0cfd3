package cache

import (
	"context"
	"sync"
)

// Bus fans typed invalidation events out to the redis store and any
// registered subscribers.  Publish is synchronous: when it returns, the
// contract keys are gone from the store and every subscriber has run, so a
// flow that publishes before reporting success guarantees the next read in
// the same tick sees fresh data.
type Bus struct {
	mu    sync.RWMutex
	store *Store
	subs  []func(Invalidation)
}

// NewBus builds a bus bound to the store.  A nil store is allowed; the bus
// then only notifies subscribers.
func NewBus(store *Store) *Bus {
	return &Bus{store: store}
}

// Subscribe registers a callback invoked on every published invalidation.
// Subscribers run synchronously on the publisher's goroutine and must not
// block.
func (b *Bus) Subscribe(fn func(Invalidation)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish deletes the event's contract keys from the store and notifies
// subscribers.
func (b *Bus) Publish(ctx context.Context, ev Invalidation) {
	if b == nil {
		return
	}
	if b.store != nil {
		b.store.Delete(ctx, KeysFor(ev)...)
	}
	b.mu.RLock()
	subs := make([]func(Invalidation), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
