package home

import (
	"context"

	"github.com/guilhermegouw/tabhome/internal/analytics"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
	"github.com/guilhermegouw/tabhome/internal/tabs"
)

// SessionManager owns the live tab set.
type SessionManager interface {
	Sessions() []tabs.Session
	SelectedID() string
	FindByID(id string) (tabs.Session, bool)
	Select(s tabs.Session) error
	Remove(s tabs.Session) bool
	RemoveAllOfType(private bool) int
	Snapshot() tabs.Snapshot
	Restore(snap tabs.Snapshot) []tabs.Session
	Subscribe(ctx context.Context) *pubsub.Subscription[events.TabEvent]
}

// SessionStorage persists archived bundles.
type SessionStorage interface {
	Bundles(ctx context.Context, limit int) ([]*bundle.Bundle, error)
	Current(ctx context.Context) (*bundle.Bundle, error)
	Archive(ctx context.Context, m bundle.TabSet) error
	Switch(ctx context.Context, m bundle.TabSet, b *bundle.Bundle) error
	Remove(ctx context.Context, b *bundle.Bundle) error
	Subscribe(ctx context.Context) *pubsub.Subscription[events.BundleEvent]
}

// DestinationKind names a screen the navigator can show.
type DestinationKind int

// Destinations reachable from home.
const (
	DestBrowser DestinationKind = iota
	DestSearch
	DestSettings
	DestLibrary
)

// Destination is a navigation target.
type Destination struct {
	Kind  DestinationKind
	TabID string
}

// Browser is the browser view for tab id.
func Browser(id string) Destination { return Destination{Kind: DestBrowser, TabID: id} }

// Search is the search screen.
func Search() Destination { return Destination{Kind: DestSearch} }

// Settings is the settings screen.
func Settings() Destination { return Destination{Kind: DestSettings} }

// Library is the library screen.
func Library() Destination { return Destination{Kind: DestLibrary} }

// Navigator moves the host UI to another screen.
type Navigator interface {
	Navigate(d Destination)
}

// Runner executes work off the dispatch goroutine. A non-nil effect is
// delivered to the UI unless the screen was torn down first.
type Runner interface {
	Go(task string, fn func(ctx context.Context) (Effect, error))
}

// Tracker is re-exported so callers wiring a Router need only this package.
type Tracker = analytics.Tracker
