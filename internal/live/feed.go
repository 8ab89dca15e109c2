// Package live fans the engine's execution events out to gRPC stream
// subscribers, keeping a bounded ring of recent events for snapshots.
package live

import (
	"sync"

	"helmsman/internal/store"
)

// Feed is the shared in-memory event hub. The engine publishes from its
// cycle goroutine; gRPC handlers subscribe and snapshot from theirs.
type Feed struct {
	mu     sync.RWMutex
	recent []store.JournalEvent
	max    int

	subsMu    sync.Mutex
	nextSubID int
	subs      map[int]chan store.JournalEvent
}

// NewFeed creates a feed that retains up to maxRecent events for the
// snapshot sent to new subscribers.
func NewFeed(maxRecent int) *Feed {
	return &Feed{
		max:  maxRecent,
		subs: make(map[int]chan store.JournalEvent),
	}
}

// Publish appends the event to the recent ring and fans it out. Sends to
// subscribers are non-blocking: a slow subscriber drops events rather than
// stalling the trading cycle.
func (f *Feed) Publish(evt store.JournalEvent) {
	f.mu.Lock()
	f.recent = append(f.recent, evt)
	if len(f.recent) > f.max {
		f.recent = f.recent[len(f.recent)-f.max:]
	}
	f.mu.Unlock()

	f.subsMu.Lock()
	for _, ch := range f.subs {
		select {
		case ch <- evt:
		default:
			// Slow subscriber, drop event.
		}
	}
	f.subsMu.Unlock()
}

// Recent returns a copy of the retained events, oldest first.
func (f *Feed) Recent() []store.JournalEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]store.JournalEvent, len(f.recent))
	copy(out, f.recent)
	return out
}

// Subscribe creates a subscription channel for live events.
func (f *Feed) Subscribe(bufSize int) (id int, ch <-chan store.JournalEvent) {
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	id = f.nextSubID
	f.nextSubID++
	c := make(chan store.JournalEvent, bufSize)
	f.subs[id] = c
	return id, c
}

// Unsubscribe removes a subscription and closes its channel.
func (f *Feed) Unsubscribe(id int) {
	f.subsMu.Lock()
	defer f.subsMu.Unlock()
	if ch, ok := f.subs[id]; ok {
		close(ch)
		delete(f.subs, id)
	}
}
