package eventbus

import "sync"

// Handler receives events published on a Bus.
type Handler[T any] func(T)

// Bus is a type-safe publish/subscribe bus for events of type T.
// Publish invokes every handler synchronously, in subscription order, on the
// caller's goroutine. Handlers therefore observe events in the exact order
// the simulation produced them.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   []*subscription[T]
	closed bool
}

type subscription[T any] struct {
	fn Handler[T]
}

// New creates a new Bus.
func New[T any]() *Bus[T] { return &Bus[T]{} }

// Publish delivers the event to all subscribers. Publishing on a nil or
// closed bus is a no-op.
func (b *Bus[T]) Publish(e T) {
	if b == nil {
		return
	}
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	subs := make([]*subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(e)
	}
}

// Subscribe registers fn and returns a function removing the subscription.
// Subscribing to a closed bus returns a no-op cancel function.
func (b *Bus[T]) Subscribe(fn Handler[T]) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	s := &subscription[T]{fn: fn}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	b.subs = append(b.subs, s)
	return func() { b.unsubscribe(s) }
}

func (b *Bus[T]) unsubscribe(target *subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == target {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of active subscriptions.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops all subscribers. Later publishes are ignored.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	b.closed = true
	b.subs = nil
	b.mu.Unlock()
}
