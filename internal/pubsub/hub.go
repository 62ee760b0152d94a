package pubsub

import (
	"sync"

	"github.com/guilhermegouw/tabhome/internal/events"
)

// analyticsBufferSize lets a debug viewer fall behind a burst of usage
// events before any are dropped.
const analyticsBufferSize = 256

// Hub owns the domain brokers and shuts them down together.
type Hub struct { //nolint:govet // fieldalignment: preserving logical field order
	Tabs      *Broker[events.TabEvent]
	Bundles   *Broker[events.BundleEvent]
	Analytics *Broker[events.AnalyticsEvent]

	registry *Registry
	done     chan struct{}
	once     sync.Once
}

// NewHub creates a Hub with all domain brokers initialized.
// Tab and bundle brokers never drop: every change must reach the views,
// which re-project from scratch on each event.
func NewHub() *Hub {
	h := &Hub{
		Tabs:      NewBroker("tabs", WithDropPolicy[events.TabEvent](false)),
		Bundles:   NewBroker("bundles", WithDropPolicy[events.BundleEvent](false)),
		Analytics: NewBroker("analytics", WithBufferSize[events.AnalyticsEvent](analyticsBufferSize)),
		registry:  NewRegistry(),
		done:      make(chan struct{}),
	}

	h.registry.Register("tabs", h.Tabs)
	h.registry.Register("bundles", h.Bundles)
	h.registry.Register("analytics", h.Analytics)

	return h
}

// Shutdown gracefully shuts down all brokers.
func (h *Hub) Shutdown() {
	first := false
	h.once.Do(func() {
		close(h.done)
		first = true
	})
	if !first {
		return
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); h.Tabs.Shutdown() }()
	go func() { defer wg.Done(); h.Bundles.Shutdown() }()
	go func() { defer wg.Done(); h.Analytics.Shutdown() }()
	wg.Wait()
}

// IsShutdown returns true if the hub has been shut down.
func (h *Hub) IsShutdown() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done returns a channel that's closed when the hub is shut down.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Registry returns the debug registry for introspection.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// AllMetrics returns metrics for all brokers, in a stable order.
func (h *Hub) AllMetrics() []BrokerMetrics {
	return []BrokerMetrics{
		h.Tabs.Metrics(),
		h.Bundles.Metrics(),
		h.Analytics.Metrics(),
	}
}

// DebugString returns a formatted debug string for all brokers.
func (h *Hub) DebugString() string {
	return h.registry.DebugString()
}
