// Package bundle persists archived tab bundles.
package bundle

import (
	"context"
	"errors"
	"time"

	"github.com/guilhermegouw/tabhome/internal/tabs"
)

// DefaultLimit is how many bundles are listed when no limit is configured.
const DefaultLimit = 25

var (
	// ErrNotFound is returned when a bundle is not found.
	ErrNotFound = errors.New("bundle not found")

	// ErrEmptyBundle is returned when a bundle has nothing to restore.
	ErrEmptyBundle = errors.New("bundle has no restorable tabs")
)

// Tab is one saved tab inside a bundle.
type Tab struct {
	URL   string
	Title string
}

// Bundle is a persisted snapshot of a set of tabs. At most one bundle is
// Current: the autosave target for the live normal tabs.
type Bundle struct {
	ID            string
	Current       bool
	Tabs          []Tab
	SelectedIndex int
	CreatedAt     time.Time
	LastSavedAt   time.Time
}

// URLs returns the tab URLs in order.
func (b *Bundle) URLs() []string {
	urls := make([]string, 0, len(b.Tabs))
	for _, t := range b.Tabs {
		urls = append(urls, t.URL)
	}
	return urls
}

// RestoreSnapshot converts the bundle into a snapshot the tab manager can
// restore. Tabs without a URL are skipped.
func (b *Bundle) RestoreSnapshot() (tabs.Snapshot, error) {
	snap := tabs.Snapshot{SelectedIndex: -1}
	for i, t := range b.Tabs {
		if t.URL == "" {
			continue
		}
		if i == b.SelectedIndex {
			snap.SelectedIndex = len(snap.Tabs)
		}
		snap.Tabs = append(snap.Tabs, tabs.SnapshotTab{URL: t.URL, Title: t.Title})
	}
	if len(snap.Tabs) == 0 {
		return tabs.Snapshot{}, ErrEmptyBundle
	}
	return snap, nil
}

// FromSnapshot builds bundle tabs from a tab snapshot.
func FromSnapshot(snap tabs.Snapshot) ([]Tab, int) {
	out := make([]Tab, len(snap.Tabs))
	for i, t := range snap.Tabs {
		out[i] = Tab{URL: t.URL, Title: t.Title}
	}
	return out, snap.SelectedIndex
}

// Store defines the interface for bundle persistence.
type Store interface {
	// Save inserts or replaces a bundle together with its tabs.
	Save(ctx context.Context, b *Bundle) error

	// Get retrieves a bundle by ID.
	Get(ctx context.Context, id string) (*Bundle, error)

	// Current returns the current bundle or ErrNotFound.
	Current(ctx context.Context) (*Bundle, error)

	// List returns up to limit bundles ordered by saved_at descending.
	List(ctx context.Context, limit int) ([]*Bundle, error)

	// Search returns bundles having a tab whose URL or title matches keyword.
	Search(ctx context.Context, keyword string, limit int) ([]*Bundle, error)

	// SetCurrent makes id the only current bundle. An empty id clears it.
	SetCurrent(ctx context.Context, id string) error

	// Delete removes a bundle and its tabs.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored bundles.
	Count(ctx context.Context) (int, error)
}
