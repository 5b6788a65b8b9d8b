package events

import (
	"log/slog"
	"sync"
)

// Broadcaster publishes values of type T to any number of subscribers.
// Each subscriber receives the most recent value on subscription, then every
// later value unless a newer one replaces it before it is read.
type Broadcaster[T any] struct {
	mu      sync.Mutex
	subs    map[int]chan T
	nextID  int
	last    T
	hasLast bool
	closed  bool
	logger  *slog.Logger
}

// NewBroadcaster creates a Broadcaster. A nil logger uses slog.Default.
func NewBroadcaster[T any](logger *slog.Logger) *Broadcaster[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster[T]{
		subs:   make(map[int]chan T),
		logger: logger.With("component", "broadcaster"),
	}
}

// NewBroadcasterWith creates a Broadcaster that already holds initial.
func NewBroadcasterWith[T any](initial T, logger *slog.Logger) *Broadcaster[T] {
	b := NewBroadcaster[T](logger)
	b.last = initial
	b.hasLast = true
	return b
}

// Subscribe registers a new observer. The returned function unsubscribes and
// closes the channel; it is safe to call more than once. Subscribing to a
// closed Broadcaster returns an already closed channel.
func (b *Broadcaster[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	if b.hasLast {
		ch <- b.last
	}
	b.logger.Debug("subscriber added", "subscriber_count", len(b.subs))

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Publish records v as the latest value and delivers it to every subscriber,
// replacing any value a subscriber has not read yet. It never blocks.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.last = v
	b.hasLast = true

	for _, ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// Latest returns the most recently published value.
func (b *Broadcaster[T]) Latest() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.hasLast
}

// Close closes every subscriber channel. Later Publish calls are ignored.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
