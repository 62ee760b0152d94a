// Package library lists every archived bundle with search, preview,
// restore and delete.
package library

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/bridge"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui/components/bundles"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// BundleSource reads archived bundles.
type BundleSource interface {
	Bundles(ctx context.Context, limit int) ([]*bundle.Bundle, error)
	Search(ctx context.Context, keyword string, limit int) ([]*bundle.Bundle, error)
	Current(ctx context.Context) (*bundle.Bundle, error)
}

// Model is the library page.
type Model struct {
	source BundleSource
	limit  int

	list    *bundles.List
	search  *bundles.SearchBox
	hints   *bundles.HintBar
	preview *bundles.Preview

	confirm *bundle.Bundle
	query   string
	total   int

	width  int
	height int
}

// New creates the library page listing up to limit bundles.
func New(source BundleSource, limit int) *Model {
	return &Model{
		source:  source,
		limit:   limit,
		list:    bundles.NewList(),
		search:  bundles.NewSearchBox(),
		hints:   bundles.NewHintBar(),
		preview: bundles.NewPreview(),
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

	listWidth := width * 3 / 5
	m.search.SetWidth(width - 4)
	m.hints.SetWidth(width - 4)
	m.list.SetSize(listWidth-2, height-10)
	m.preview.SetSize(width-listWidth-4, height-8)
}

// Activate resets the page and loads the bundles.
func (m *Model) Activate() tea.Cmd {
	m.search.Hide()
	m.hints.SetMode(bundles.HintModeNormal)
	m.confirm = nil
	m.query = ""
	return m.load("")
}

func (m *Model) load(query string) tea.Cmd {
	source, limit := m.source, m.limit
	return func() tea.Msg {
		ctx := context.Background()

		var (
			list []*bundle.Bundle
			err  error
		)
		if query == "" {
			list, err = source.Bundles(ctx, limit)
		} else {
			list, err = source.Search(ctx, query, limit)
		}
		if err != nil {
			return bundles.LoadedMsg{Query: query, Err: err}
		}

		msg := bundles.LoadedMsg{Bundles: list, Query: query}
		if current, err := source.Current(ctx); err == nil && current != nil {
			msg.CurrentID = current.ID
		}
		return msg
	}
}

// Selected returns the bundle under the cursor.
func (m *Model) Selected() *bundle.Bundle {
	return m.list.Selected()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bundles.LoadedMsg:
		if msg.Err != nil {
			return m, util.ReportError(fmt.Errorf("loading bundles: %w", msg.Err))
		}
		// Drop results of a query the user already changed.
		if msg.Query != m.query {
			return m, nil
		}
		m.list.SetBundles(msg.Bundles, msg.CurrentID, msg.Query)
		if msg.Query == "" {
			m.total = len(msg.Bundles)
		}
		m.search.SetCounts(len(msg.Bundles), m.total)
		m.preview.SetBundle(m.list.Selected())
		return m, nil

	case bridge.BundleEventMsg:
		return m, m.load(m.query)

	case bundles.RestoreMsg:
		return m, tea.Batch(
			util.Dispatch(home.SelectArchived{Session: home.Archived(msg.Bundle)}),
			util.CmdHandler(page.ChangeMsg{Page: page.Home}),
		)

	case bundles.DeleteMsg:
		m.confirm = msg.Bundle
		m.hints.SetMode(bundles.HintModeDelete)
		return m, nil

	case bundles.SearchMsg:
		m.hints.SetMode(bundles.HintModeSearch)
		return m, m.search.Show()

	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m, m.updateConfirm(msg)
		case m.search.IsVisible() && m.search.IsFocused():
			return m, m.updateSearch(msg)
		}
		if msg.String() == "esc" {
			if m.query != "" {
				return m, m.clearSearch()
			}
			return m, util.CmdHandler(page.ChangeMsg{Page: page.Home})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.preview.SetBundle(m.list.Selected())
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	target := m.confirm
	switch msg.String() {
	case "y", "Y", "enter":
		m.confirm = nil
		m.hints.SetMode(bundles.HintModeNormal)
		return util.Dispatch(home.DeleteArchived{Session: home.Archived(target)})
	case "n", "N", "esc":
		m.confirm = nil
		m.hints.SetMode(bundles.HintModeNormal)
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.clearSearch()
	case "enter":
		m.search.Hide()
		m.hints.SetMode(bundles.HintModeNormal)
		return nil
	case "up", "down":
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		m.preview.SetBundle(m.list.Selected())
		return cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		return tea.Batch(cmd, m.load(q))
	}
	return cmd
}

func (m *Model) clearSearch() tea.Cmd {
	m.search.Hide()
	m.hints.SetMode(bundles.HintModeNormal)
	m.query = ""
	return m.load("")
}

// View renders the page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	header := t.S().Title.Render(fmt.Sprintf("Library (%d)", m.total))
	if m.query != "" {
		header += t.S().Muted.Render(fmt.Sprintf("  matching %q", m.query))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.width*3/5).Render(m.list.View()),
		m.preview.View(),
	)

	rows := []string{header, ""}
	if m.search.IsVisible() {
		rows = append(rows, m.search.View())
	}
	rows = append(rows, body)
	if m.confirm != nil {
		rows = append(rows, "", t.S().Warning.Render("Delete this bundle? It cannot be restored afterwards."))
	}
	rows = append(rows, "", m.hints.View())

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Cursor returns the search cursor while searching.
func (m *Model) Cursor() *tea.Cursor {
	c := m.search.Cursor()
	if c != nil {
		// Padding, header and the search box border.
		c.X += 4
		c.Y += 4
	}
	return c
}
