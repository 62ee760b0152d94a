// Package tabs holds the live set of open browser tabs.
package tabs

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

// ErrNotFound is returned when a tab is not in the live set.
var ErrNotFound = errors.New("tab not found")

// Session is a single open tab.
type Session struct {
	ID      string
	Title   string
	URL     string
	Private bool
}

// SnapshotTab is the persisted form of one tab.
type SnapshotTab struct {
	URL   string
	Title string
}

// Snapshot is a restorable copy of a set of normal tabs.
// SelectedIndex is -1 when no tab was selected.
type Snapshot struct {
	Tabs          []SnapshotTab
	SelectedIndex int
}

// Manager owns the live tab set. All mutation goes through it, and observers
// are notified after the change is applied and the lock released.
type Manager struct {
	sessions []Session
	selected string
	broker   pubsub.PubSub[events.TabEvent]
	mu       sync.RWMutex
}

// NewManager creates a manager publishing on broker. A nil broker gets a
// private one so Subscribe always works.
func NewManager(broker pubsub.PubSub[events.TabEvent]) *Manager {
	if broker == nil {
		broker = pubsub.NewBroker("tabs", pubsub.WithDropPolicy[events.TabEvent](false))
	}
	return &Manager{broker: broker}
}

// Subscribe registers an observer for tab events. Release it with
// Unsubscribe on the returned subscription.
func (m *Manager) Subscribe(ctx context.Context) *pubsub.Subscription[events.TabEvent] {
	return m.broker.Subscribe(ctx)
}

// Add opens a new tab and optionally selects it. An empty title falls back
// to the URL.
func (m *Manager) Add(url, title string, private, selectIt bool) Session {
	if title == "" {
		title = url
	}
	s := Session{
		ID:      uuid.New().String(),
		Title:   title,
		URL:     url,
		Private: private,
	}

	m.mu.Lock()
	m.sessions = append(m.sessions, s)
	if selectIt || m.selected == "" {
		m.selected = s.ID
		selectIt = true
	}
	m.mu.Unlock()

	m.broker.Publish(pubsub.EventCreated, events.NewTabAddedEvent(s.ID, private))
	if selectIt {
		m.broker.Publish(pubsub.EventUpdated, events.NewTabSelectedEvent(s.ID, private))
	}
	return s
}

// Sessions returns a copy of all open tabs in insertion order.
func (m *Manager) Sessions() []Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Session, len(m.sessions))
	copy(out, m.sessions)
	return out
}

// SelectedID returns the selected tab ID, or "" when nothing is selected.
func (m *Manager) SelectedID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.selected
}

// Selected returns the selected tab.
func (m *Manager) Selected() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(m.selected); i >= 0 {
		return m.sessions[i], true
	}
	return Session{}, false
}

// FindByID looks up an open tab.
func (m *Manager) FindByID(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.sessions[i], true
	}
	return Session{}, false
}

// Select makes s the selected tab.
func (m *Manager) Select(s Session) error {
	m.mu.Lock()
	if m.indexOf(s.ID) < 0 {
		m.mu.Unlock()
		return ErrNotFound
	}
	m.selected = s.ID
	m.mu.Unlock()

	m.broker.Publish(pubsub.EventUpdated, events.NewTabSelectedEvent(s.ID, s.Private))
	return nil
}

// Remove closes s. It reports false when s was not open.
func (m *Manager) Remove(s Session) bool {
	m.mu.Lock()
	i := m.indexOf(s.ID)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	removed := m.sessions[i]
	m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
	reselected := ""
	if m.selected == removed.ID {
		m.selected = m.nearest(i, removed.Private)
		reselected = m.selected
	}
	m.mu.Unlock()

	m.broker.Publish(pubsub.EventDeleted, events.NewTabRemovedEvent(removed.ID, removed.Private))
	if reselected != "" {
		m.broker.Publish(pubsub.EventUpdated, events.NewTabSelectedEvent(reselected, removed.Private))
	}
	return true
}

// RemoveAllOfType closes every tab whose privacy flag equals private and
// returns how many were closed.
func (m *Manager) RemoveAllOfType(private bool) int {
	m.mu.Lock()
	kept := m.sessions[:0]
	removed := 0
	selectedGone := false
	for _, s := range m.sessions {
		if s.Private == private {
			removed++
			if s.ID == m.selected {
				selectedGone = true
			}
			continue
		}
		kept = append(kept, s)
	}
	m.sessions = kept
	if selectedGone {
		m.selected = ""
		if len(m.sessions) > 0 {
			m.selected = m.sessions[len(m.sessions)-1].ID
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.broker.Publish(pubsub.EventDeleted, events.NewAllTabsRemovedEvent(private, removed))
	}
	return removed
}

// Snapshot captures the normal tabs. Private tabs are never persisted.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{SelectedIndex: -1}
	for _, s := range m.sessions {
		if s.Private {
			continue
		}
		if s.ID == m.selected {
			snap.SelectedIndex = len(snap.Tabs)
		}
		snap.Tabs = append(snap.Tabs, SnapshotTab{URL: s.URL, Title: s.Title})
	}
	return snap
}

// Restore opens every tab in snap as a normal tab and selects the one at
// SelectedIndex (or the first restored tab). It returns the opened tabs.
func (m *Manager) Restore(snap Snapshot) []Session {
	if len(snap.Tabs) == 0 {
		return nil
	}

	restored := make([]Session, 0, len(snap.Tabs))
	for _, t := range snap.Tabs {
		title := t.Title
		if title == "" {
			title = t.URL
		}
		restored = append(restored, Session{
			ID:    uuid.New().String(),
			Title: title,
			URL:   t.URL,
		})
	}

	selectIdx := snap.SelectedIndex
	if selectIdx < 0 || selectIdx >= len(restored) {
		selectIdx = 0
	}

	m.mu.Lock()
	m.sessions = append(m.sessions, restored...)
	m.selected = restored[selectIdx].ID
	m.mu.Unlock()

	m.broker.Publish(pubsub.EventRestored, events.NewTabsRestoredEvent(len(restored)))
	return restored
}

// indexOf must be called with mu held.
func (m *Manager) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// nearest picks the tab of the same mode closest to a removed position,
// preferring the one that slid into it. Must be called with mu held.
func (m *Manager) nearest(pos int, private bool) string {
	for i := pos; i < len(m.sessions); i++ {
		if m.sessions[i].Private == private {
			return m.sessions[i].ID
		}
	}
	for i := pos - 1; i >= 0; i-- {
		if m.sessions[i].Private == private {
			return m.sessions[i].ID
		}
	}
	return ""
}
