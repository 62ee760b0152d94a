package bundle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
	"github.com/guilhermegouw/tabhome/internal/tabs"
)

// TabSet is the part of the tab manager storage needs to archive and
// restore tabs.
type TabSet interface {
	Snapshot() tabs.Snapshot
	RemoveAllOfType(private bool) int
	Restore(snap tabs.Snapshot) []tabs.Session
}

// TabSource is a TabSet that can be watched for changes.
type TabSource interface {
	TabSet
	Subscribe(ctx context.Context) *pubsub.Subscription[events.TabEvent]
}

// Storage manages bundles with pub/sub event publishing.
//
// Tab manager calls are always made without holding mu: the manager
// publishes synchronously and Watch takes mu while handling those events.
type Storage struct {
	store     Store
	broker    pubsub.PubSub[events.BundleEvent]
	archiving int
	mu        sync.Mutex
}

// NewStorage creates a bundle storage service. A nil broker gets a private
// one so Subscribe always works.
func NewStorage(store Store, broker pubsub.PubSub[events.BundleEvent]) *Storage {
	if broker == nil {
		broker = pubsub.NewBroker("bundles", pubsub.WithDropPolicy[events.BundleEvent](false))
	}
	return &Storage{
		store:  store,
		broker: broker,
	}
}

// Subscribe registers an observer for bundle events.
func (s *Storage) Subscribe(ctx context.Context) *pubsub.Subscription[events.BundleEvent] {
	return s.broker.Subscribe(ctx)
}

// Bundles returns up to limit bundles, newest first. The current bundle is
// included.
func (s *Storage) Bundles(ctx context.Context, limit int) ([]*Bundle, error) {
	return s.store.List(ctx, limit)
}

// Search returns bundles with a tab matching keyword.
func (s *Storage) Search(ctx context.Context, keyword string, limit int) ([]*Bundle, error) {
	return s.store.Search(ctx, keyword, limit)
}

// Get retrieves a bundle by ID.
func (s *Storage) Get(ctx context.Context, id string) (*Bundle, error) {
	return s.store.Get(ctx, id)
}

// Count returns the number of stored bundles.
func (s *Storage) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Current returns the autosave bundle for the live tabs, or nil when there
// is none.
func (s *Storage) Current(ctx context.Context) (*Bundle, error) {
	b, err := s.store.Current(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return b, err
}

// Save writes the manager's normal tabs into the current bundle, creating
// one if needed. An empty tab set is never saved.
func (s *Storage) Save(ctx context.Context, m TabSet) error {
	snap := m.Snapshot()
	if len(snap.Tabs) == 0 {
		return nil
	}

	s.mu.Lock()
	if s.archiving > 0 {
		s.mu.Unlock()
		return nil
	}
	b, err := s.saveLocked(ctx, snap, true)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(pubsub.EventUpdated, events.NewBundleSavedEvent(b.ID, len(b.Tabs)))
	return nil
}

// Archive saves the manager's normal tabs into the current bundle, closes
// them and leaves no current bundle, so the next autosave starts a fresh
// one. It does nothing when there are no normal tabs.
func (s *Storage) Archive(ctx context.Context, m TabSet) error {
	snap := m.Snapshot()
	if len(snap.Tabs) == 0 {
		return nil
	}

	s.mu.Lock()
	b, err := s.saveLocked(ctx, snap, false)
	if err == nil {
		s.archiving++
	}
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("archiving tabs: %w", err)
	}

	m.RemoveAllOfType(false)

	s.mu.Lock()
	s.archiving--
	s.mu.Unlock()

	debug.Event("bundle", "archived", fmt.Sprintf("id=%s tabs=%d", b.ID, len(b.Tabs)))
	s.publish(pubsub.EventUpdated, events.NewBundleArchivedEvent(b.ID, len(b.Tabs)))
	return nil
}

// Restore reopens b's tabs in the manager and makes b the current bundle.
// Callers archive the live tabs first. A bundle with nothing to restore
// leaves the manager untouched.
func (s *Storage) Restore(ctx context.Context, m TabSet, b *Bundle) error {
	if b == nil || b.ID == "" {
		return ErrNotFound
	}
	snap, err := b.RestoreSnapshot()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	err = s.store.SetCurrent(ctx, b.ID)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("restoring bundle: %w", err)
	}

	restored := m.Restore(snap)

	debug.Event("bundle", "restored", fmt.Sprintf("id=%s tabs=%d", b.ID, len(restored)))
	s.publish(pubsub.EventRestored, events.NewBundleRestoredEvent(b.ID, len(restored)))
	return nil
}

// Switch archives the live normal tabs and reopens b in their place. The
// live tabs are closed only once b is the current bundle: when b is gone,
// cannot be restored or ctx ends first, the archived bundle is made current
// again and the manager is left as it was.
func (s *Storage) Switch(ctx context.Context, m TabSet, b *Bundle) error {
	if b == nil || b.ID == "" {
		return ErrNotFound
	}
	if _, err := b.RestoreSnapshot(); err != nil {
		return err
	}

	live := m.Snapshot()

	s.mu.Lock()
	stored, err := s.store.Get(ctx, b.ID)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("restoring bundle: %w", err)
	}
	snap, err := stored.RestoreSnapshot()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var archived *Bundle
	if len(live.Tabs) > 0 {
		archived, err = s.saveLocked(ctx, live, false)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("archiving tabs: %w", err)
		}
	}

	err = ctx.Err()
	if err == nil {
		err = s.store.SetCurrent(ctx, b.ID)
	}
	if err != nil {
		s.rollbackLocked(ctx, archived)
		s.mu.Unlock()
		return fmt.Errorf("restoring bundle: %w", err)
	}
	s.archiving++
	s.mu.Unlock()

	m.RemoveAllOfType(false)

	s.mu.Lock()
	s.archiving--
	s.mu.Unlock()

	restored := m.Restore(snap)

	if archived != nil {
		debug.Event("bundle", "archived", fmt.Sprintf("id=%s tabs=%d", archived.ID, len(archived.Tabs)))
		s.publish(pubsub.EventUpdated, events.NewBundleArchivedEvent(archived.ID, len(archived.Tabs)))
	}
	debug.Event("bundle", "restored", fmt.Sprintf("id=%s tabs=%d", b.ID, len(restored)))
	s.publish(pubsub.EventRestored, events.NewBundleRestoredEvent(b.ID, len(restored)))
	return nil
}

// rollbackLocked makes archived current again after a failed Switch. It
// must be called with mu held.
func (s *Storage) rollbackLocked(ctx context.Context, archived *Bundle) {
	if archived == nil {
		return
	}
	if err := s.store.SetCurrent(context.WithoutCancel(ctx), archived.ID); err != nil {
		debug.Error("bundle", err, "rolling back switch")
	}
}

// Remove deletes b. Removing a bundle that no longer exists is a no-op.
func (s *Storage) Remove(ctx context.Context, b *Bundle) error {
	if b == nil || b.ID == "" {
		return nil
	}

	s.mu.Lock()
	err := s.store.Delete(ctx, b.ID)
	s.mu.Unlock()
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.publish(pubsub.EventDeleted, events.NewBundleRemovedEvent(b.ID))
	return nil
}

// Watch autosaves the live tabs on every change until ctx is done.
func (s *Storage) Watch(ctx context.Context, src TabSource) error {
	sub := src.Subscribe(ctx)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.Events():
			if !ok {
				return nil
			}
			if err := s.Save(ctx, src); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				debug.Error("bundle", err, "autosave")
			}
		}
	}
}

// saveLocked must be called with mu held.
func (s *Storage) saveLocked(ctx context.Context, snap tabs.Snapshot, current bool) (*Bundle, error) {
	b, err := s.store.Current(ctx)
	if errors.Is(err, ErrNotFound) {
		b = &Bundle{ID: uuid.New().String()}
	} else if err != nil {
		return nil, err
	}

	b.Tabs, b.SelectedIndex = FromSnapshot(snap)
	b.Current = current
	b.LastSavedAt = time.Now()
	if err := s.store.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Storage) publish(eventType pubsub.EventType, e events.BundleEvent) {
	s.broker.Publish(eventType, e)
}
