// Package home drives the browser home screen: it projects the live tabs
// and archived bundles into view state and routes user intents to the tab
// manager, bundle storage, navigator and analytics.
package home

import (
	"time"

	"github.com/guilhermegouw/tabhome/internal/bundle"
)

// SessionViewState is a tab as displayed in the tab list.
type SessionViewState struct {
	ID       string
	Title    string
	URL      string
	Selected bool
}

// ArchivedSession is a bundle as displayed in the archived list.
type ArchivedSession struct {
	ID      string
	Bundle  *bundle.Bundle
	SavedAt time.Time
	URLs    []string
}

// TabsChange carries a fresh projection of the tab list.
type TabsChange struct {
	Tabs                   []SessionViewState
	Private                bool
	ShowPrivateDescription bool
}

// SessionsChange carries a fresh projection of the archived list.
type SessionsChange struct {
	Sessions []ArchivedSession
}
