package events

import (
	"context"
	"sync"

	"vyzioads/pkg/logger"
)

type Handler func(ctx context.Context, evt Event)

// Bus is a synchronous in-process dispatcher. Handlers run in subscription
// order on the publisher's goroutine, after the publisher's primary-store
// write has committed. A panicking handler is logged and skipped so one
// subscriber cannot take down the fan-out.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

func (b *Bus) Publish(ctx context.Context, evt Event) {
	b.mu.RLock()
	handlers := b.handlers[evt.Name()]
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(ctx, evt, h)
	}
}

func (b *Bus) dispatch(ctx context.Context, evt Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handler panic on %s: %v", evt.Name(), r)
		}
	}()
	h(ctx, evt)
}
