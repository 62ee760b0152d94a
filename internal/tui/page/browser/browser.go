// Package browser shows a single open tab.
package browser

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/bridge"
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tabs"
	"github.com/guilhermegouw/tabhome/internal/tui/keys"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// TabFinder looks up live tabs.
type TabFinder interface {
	FindByID(id string) (tabs.Session, bool)
}

// Model is the browser page.
type Model struct {
	keys   keys.KeyMap
	finder TabFinder
	copy   func(string) error

	tab   tabs.Session
	found bool

	width  int
	height int
}

// New creates the browser page.
func New(km keys.KeyMap, finder TabFinder) *Model {
	return &Model{
		keys:   km,
		finder: finder,
		copy:   clipboard.WriteAll,
	}
}

// Init implements util.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the page size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Open shows the tab with id.
func (m *Model) Open(id string) {
	m.tab, m.found = m.finder.FindByID(id)
}

// Tab returns the shown tab.
func (m *Model) Tab() (tabs.Session, bool) {
	return m.tab, m.found
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bridge.TabEventMsg:
		if !m.found {
			return m, nil
		}
		e := msg.Event.Payload
		if e.Type != events.TabEventRemoved && e.Type != events.TabEventAllRemoved && e.Type != events.TabEventRestored {
			return m, nil
		}
		m.Open(m.tab.ID)
		if !m.found {
			return m, util.CmdHandler(page.ChangeMsg{Page: page.Home})
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return util.CmdHandler(page.ChangeMsg{Page: page.Home})
	case key.Matches(msg, m.keys.Copy):
		if !m.found {
			return nil
		}
		url := m.tab.URL
		return func() tea.Msg {
			if err := m.copy(url); err != nil {
				return util.InfoMsg{Type: util.InfoTypeError, Msg: fmt.Sprintf("copy failed: %v", err)}
			}
			return util.InfoMsg{Type: util.InfoTypeSuccess, Msg: "URL copied"}
		}
	case key.Matches(msg, m.keys.Close):
		if !m.found {
			return nil
		}
		return tea.Batch(
			util.Dispatch(home.CloseTab{ID: m.tab.ID}),
			util.CmdHandler(page.ChangeMsg{Page: page.Home}),
		)
	}
	return nil
}

// View renders the page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	if !m.found {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			t.S().Muted.Render("This tab is closed."))
	}

	width := max(m.width-8, 20)

	badge := t.S().Subtitle.Render("tab")
	border := t.BorderFocus
	if m.tab.Private {
		badge = t.S().Private.Render("private tab")
		border = t.Private
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		badge,
		"",
		t.S().Title.Render(ansi.Truncate(m.tab.Title, width, "…")),
		t.S().Info.Render(ansi.Truncate(m.tab.URL, width, "…")),
		"",
		t.S().Muted.Render(keys.Hints(m.keys.BrowserHints())),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(width + 4).
		Render(body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
