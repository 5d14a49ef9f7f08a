// Package events carries row-change notifications from write handlers to
// subscribers (the SSE stream). Subscribers treat a change as a signal to
// re-fetch, never as a delta to merge.
package events

import "sync"

type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Change identifies one modified row.
type Change struct {
	Table  string `json:"table"`
	Action Action `json:"action"`
	ID     uint   `json:"id"`
}

// Bus fans changes out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses that change, which is acceptable because the
// consumer re-fetches full state anyway.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

func NewBus() *Bus {
	return &Bus{subs: map[int]chan Change{}}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the subscription; the channel is closed by cancel.
func (b *Bus) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Change, 16)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers c to every subscriber with buffer room.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
