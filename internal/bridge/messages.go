// Package bridge provides the connection between the pub/sub system and Bubble Tea.
package bridge

import (
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

// TabEventMsg wraps a tab event for the TUI.
type TabEventMsg struct {
	Event pubsub.Event[events.TabEvent]
}

// BundleEventMsg wraps a bundle event for the TUI.
type BundleEventMsg struct {
	Event pubsub.Event[events.BundleEvent]
}

// AnalyticsEventMsg wraps an analytics event for the TUI.
type AnalyticsEventMsg struct {
	Event pubsub.Event[events.AnalyticsEvent]
}

// TabsChangedMsg carries a re-projected tab list from the home controller.
type TabsChangedMsg struct {
	Change home.TabsChange
}

// SessionsChangedMsg carries a re-projected archived list from the home
// controller.
type SessionsChangedMsg struct {
	Change home.SessionsChange
}

// EffectMsg carries a UI effect produced by an intent.
type EffectMsg struct {
	Effect home.Effect
}

// ErrorMsg indicates a non-fatal error surfaced to the TUI.
type ErrorMsg struct { //nolint:govet // fieldalignment: preserving logical field order
	Source string
	Error  error
}
