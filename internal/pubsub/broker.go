package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is the default channel buffer for subscribers.
const DefaultBufferSize = 64

// BrokerOption configures a Broker.
type BrokerOption[T any] func(*Broker[T])

// WithBufferSize sets the subscriber channel buffer size.
func WithBufferSize[T any](size int) BrokerOption[T] {
	return func(b *Broker[T]) {
		b.bufferSize = size
	}
}

// WithDropPolicy sets whether to drop events when a subscriber is full.
// With drop disabled, Publish waits until the subscriber reads the event
// or unsubscribes.
func WithDropPolicy[T any](drop bool) BrokerOption[T] {
	return func(b *Broker[T]) {
		b.dropOnFull = drop
	}
}

// subscriber is a single registered listener.
type subscriber[T any] struct {
	ch   chan Event[T]
	quit chan struct{}
}

// Subscription is a live registration on a Broker. Release it with
// Unsubscribe; cancelling the context passed to Subscribe has the same effect.
type Subscription[T any] struct {
	events <-chan Event[T]
	cancel context.CancelFunc
	done   chan struct{}
}

// Events returns the channel events are delivered on. It is closed once the
// subscription is released or the broker shuts down.
func (s *Subscription[T]) Events() <-chan Event[T] {
	return s.events
}

// Unsubscribe releases the subscription and waits until the broker has
// dropped it. Safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.cancel()
	<-s.done
}

// Broker is a type-safe pub/sub broker using Go generics.
// It is thread-safe and supports context-scoped subscriptions.
type Broker[T any] struct { //nolint:govet // fieldalignment: preserving logical field order
	name       string
	subs       map[*subscriber[T]]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	closeOnce  sync.Once
	bufferSize int
	dropOnFull bool

	publishCount   atomic.Int64
	dropCount      atomic.Int64
	subscriberPeak atomic.Int32
	subscriberCurr atomic.Int32
}

var _ PubSub[struct{}] = (*Broker[struct{}])(nil)

// NewBroker creates a new typed broker with optional configuration.
func NewBroker[T any](name string, opts ...BrokerOption[T]) *Broker[T] {
	b := &Broker[T]{
		name:       name,
		subs:       make(map[*subscriber[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: DefaultBufferSize,
		dropOnFull: true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the broker's name for debugging.
func (b *Broker[T]) Name() string {
	return b.name
}

// Subscribe registers a listener that receives events until ctx is cancelled,
// Unsubscribe is called, or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.IsShutdown() {
		ch := make(chan Event[T])
		close(ch)
		close(done)
		return &Subscription[T]{events: ch, cancel: cancel, done: done}
	}

	sub := &subscriber[T]{
		ch:   make(chan Event[T], b.bufferSize),
		quit: make(chan struct{}),
	}
	b.subs[sub] = struct{}{}

	curr := b.subscriberCurr.Add(1)
	for {
		peak := b.subscriberPeak.Load()
		if curr <= peak || b.subscriberPeak.CompareAndSwap(peak, curr) {
			break
		}
	}

	go func() {
		defer close(done)

		select {
		case <-ctx.Done():
		case <-b.done:
		}

		// Unblock any publisher waiting on this subscriber before taking the lock.
		close(sub.quit)

		b.mu.Lock()
		defer b.mu.Unlock()

		if _, ok := b.subs[sub]; !ok {
			return
		}
		delete(b.subs, sub)
		close(sub.ch)
		b.subscriberCurr.Add(-1)
	}()

	return &Subscription[T]{events: sub.ch, cancel: cancel, done: done}
}

// Publish sends an event to all subscribers.
// With the drop policy enabled (default) slow subscribers miss the event.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.IsShutdown() || len(b.subs) == 0 {
		return
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	b.publishCount.Add(1)

	// Channels are only closed under the write lock, so sending while
	// holding the read lock never hits a closed channel.
	for sub := range b.subs {
		if b.dropOnFull {
			select {
			case sub.ch <- event:
			default:
				b.dropCount.Add(1)
			}
			continue
		}

		select {
		case sub.ch <- event:
		case <-sub.quit:
			b.dropCount.Add(1)
		case <-b.done:
			return
		}
	}
}

// Shutdown closes every subscriber channel and rejects further publishes.
func (b *Broker[T]) Shutdown() {
	b.closeOnce.Do(func() { close(b.done) })

	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.subscriberCurr.Store(0)
}

// IsShutdown returns true if the broker has been shut down.
func (b *Broker[T]) IsShutdown() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Broker[T]) SubscriberCount() int {
	return int(b.subscriberCurr.Load())
}

// Metrics returns the broker's metrics for debugging.
func (b *Broker[T]) Metrics() BrokerMetrics {
	return BrokerMetrics{
		Name:            b.name,
		PublishCount:    b.publishCount.Load(),
		DropCount:       b.dropCount.Load(),
		SubscriberCount: int(b.subscriberCurr.Load()),
		SubscriberPeak:  int(b.subscriberPeak.Load()),
	}
}

// BrokerMetrics contains broker statistics for debugging.
type BrokerMetrics struct {
	Name            string
	PublishCount    int64
	DropCount       int64
	SubscriberCount int
	SubscriberPeak  int
}
