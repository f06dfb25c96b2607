package event

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const defaultBuffer = 256

type InMemoryBus struct {
	mu          sync.RWMutex
	buffer      int
	subscribers map[string]chan Event
}

func NewBus() *InMemoryBus {
	return NewBusWithBuffer(defaultBuffer)
}

func NewBusWithBuffer(buffer int) *InMemoryBus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &InMemoryBus{
		buffer:      buffer,
		subscribers: make(map[string]chan Event),
	}
}

// Publish never blocks; a subscriber whose buffer is full misses the event.
func (b *InMemoryBus) Publish(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			slog.Warn("event dropped for slow subscriber", "subscriber", id, "type", e.Type, "tenant_id", e.TenantID)
		}
	}
}

func (b *InMemoryBus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan Event, b.buffer)
	b.subscribers[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subscribers, id)
			close(ch)
		})
	}

	return ch, unsubscribe
}
