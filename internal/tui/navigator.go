package tui

import (
	"sync"

	"github.com/guilhermegouw/tabhome/internal/bridge"
	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
)

// Navigator turns home destinations into page changes on the program.
// Destinations reached before a program is attached are dropped.
type Navigator struct {
	mu      sync.Mutex
	program bridge.Sender
}

// NewNavigator creates a detached navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Attach sets the program page changes are sent to.
func (n *Navigator) Attach(p bridge.Sender) {
	n.mu.Lock()
	n.program = p
	n.mu.Unlock()
}

// Navigate implements home.Navigator.
func (n *Navigator) Navigate(d home.Destination) {
	n.mu.Lock()
	p := n.program
	n.mu.Unlock()

	if p == nil {
		debug.Log("navigator: dropped destination %d, no program attached", d.Kind)
		return
	}
	p.Send(ChangeFor(d))
}

// ChangeFor maps a destination to its page change.
func ChangeFor(d home.Destination) page.ChangeMsg {
	switch d.Kind {
	case home.DestBrowser:
		return page.ChangeMsg{Page: page.Browser, TabID: d.TabID}
	case home.DestSearch:
		return page.ChangeMsg{Page: page.Search}
	case home.DestSettings:
		return page.ChangeMsg{Page: page.Settings}
	case home.DestLibrary:
		return page.ChangeMsg{Page: page.Library}
	default:
		return page.ChangeMsg{Page: page.Home}
	}
}
