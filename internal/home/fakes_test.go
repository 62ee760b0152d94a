package home

import (
	"context"
	"errors"
	"sync"

	"github.com/guilhermegouw/tabhome/internal/analytics"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

// fakeStorage is an in-memory SessionStorage.
type fakeStorage struct {
	broker *pubsub.Broker[events.BundleEvent]

	mu         sync.Mutex
	bundles    []*bundle.Bundle
	current    *bundle.Bundle
	archived   int
	restored   []string
	removed    []string
	archiveErr error

	// archiveGate, when set, makes Archive wait for it or for ctx.
	archiveGate chan struct{}
	// archiveEntered is closed when Archive starts waiting on the gate.
	archiveEntered chan struct{}
}

func newFakeStorage(bundles ...*bundle.Bundle) *fakeStorage {
	return &fakeStorage{
		broker:  pubsub.NewBroker("bundles", pubsub.WithDropPolicy[events.BundleEvent](false)),
		bundles: bundles,
	}
}

func (f *fakeStorage) Bundles(_ context.Context, limit int) ([]*bundle.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]*bundle.Bundle(nil), f.bundles...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStorage) Current(context.Context) (*bundle.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeStorage) Archive(ctx context.Context, m bundle.TabSet) error {
	if f.archiveGate != nil {
		if f.archiveEntered != nil {
			close(f.archiveEntered)
		}
		// Finishes even when cancelled, like storage that ignores ctx.
		select {
		case <-f.archiveGate:
		case <-ctx.Done():
		}
	}
	if f.archiveErr != nil {
		return f.archiveErr
	}

	if len(m.Snapshot().Tabs) == 0 {
		return nil
	}
	m.RemoveAllOfType(false)

	f.mu.Lock()
	f.archived++
	f.mu.Unlock()
	f.broker.Publish(pubsub.EventUpdated, events.NewBundleArchivedEvent("archived", 0))
	return nil
}

func (f *fakeStorage) Switch(ctx context.Context, m bundle.TabSet, b *bundle.Bundle) error {
	snap, err := b.RestoreSnapshot()
	if err != nil {
		return err
	}
	if err := f.Archive(ctx, m); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.Restore(snap)

	f.mu.Lock()
	f.restored = append(f.restored, b.ID)
	f.current = b
	f.mu.Unlock()
	f.broker.Publish(pubsub.EventRestored, events.NewBundleRestoredEvent(b.ID, len(snap.Tabs)))
	return nil
}

func (f *fakeStorage) Remove(_ context.Context, b *bundle.Bundle) error {
	if b == nil {
		return errors.New("nil bundle")
	}

	f.mu.Lock()
	f.removed = append(f.removed, b.ID)
	kept := f.bundles[:0]
	for _, x := range f.bundles {
		if x.ID != b.ID {
			kept = append(kept, x)
		}
	}
	f.bundles = kept
	if f.current != nil && f.current.ID == b.ID {
		f.current = nil
	}
	f.mu.Unlock()

	f.broker.Publish(pubsub.EventDeleted, events.NewBundleRemovedEvent(b.ID))
	return nil
}

func (f *fakeStorage) Subscribe(ctx context.Context) *pubsub.Subscription[events.BundleEvent] {
	return f.broker.Subscribe(ctx)
}

func (f *fakeStorage) snapshot() (archived int, restored, removed []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.archived, append([]string(nil), f.restored...), append([]string(nil), f.removed...)
}

// fakeNavigator records destinations.
type fakeNavigator struct {
	mu   sync.Mutex
	dest []Destination
}

func (n *fakeNavigator) Navigate(d Destination) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dest = append(n.dest, d)
}

func (n *fakeNavigator) last() (Destination, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.dest) == 0 {
		return Destination{}, false
	}
	return n.dest[len(n.dest)-1], true
}

// fakeTracker records analytics events.
type fakeTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (f *fakeTracker) Track(_ context.Context, e analytics.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeTracker) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Name
	}
	return out
}

// inlineRunner runs background work synchronously.
type inlineRunner struct {
	ctx     context.Context
	effects []Effect
	errs    []error
}

func (r *inlineRunner) Go(_ string, fn func(ctx context.Context) (Effect, error)) {
	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	effect, err := fn(ctx)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	if effect != nil {
		r.effects = append(r.effects, effect)
	}
}
