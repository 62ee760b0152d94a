// Package homescreen renders the home page: the live tab list, the private
// browsing blurb and the archived bundles.
package homescreen

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/bridge"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui/components/logo"
	"github.com/guilhermegouw/tabhome/internal/tui/components/sheet"
	"github.com/guilhermegouw/tabhome/internal/tui/keys"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

const privateDescription = "Private tabs are not saved or archived. " +
	"They disappear when you close them."

// Section is the focused list.
type Section int

// Sections.
const (
	SectionTabs Section = iota
	SectionArchived
)

// Model is the home page.
type Model struct {
	keys  keys.KeyMap
	sheet *sheet.Sheet

	tabs            []home.SessionViewState
	archived        []home.ArchivedSession
	private         bool
	showPrivateDesc bool

	section      Section
	tabCursor    int
	bundleCursor int

	width  int
	height int
}

// New creates the home page.
func New(km keys.KeyMap) *Model {
	return &Model{
		keys:  km,
		sheet: sheet.New(),
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
	m.sheet.SetSize(width, height)
}

// Private reports the browsing mode of the last projection.
func (m *Model) Private() bool {
	return m.private
}

// Tabs returns the projected tab list.
func (m *Model) Tabs() []home.SessionViewState {
	return m.tabs
}

// Archived returns the projected archived list.
func (m *Model) Archived() []home.ArchivedSession {
	return m.archived
}

// Section returns the focused list.
func (m *Model) Section() Section {
	return m.section
}

// SheetVisible reports whether the session sheet is open.
func (m *Model) SheetVisible() bool {
	return m.sheet.IsVisible()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bridge.TabsChangedMsg:
		m.applyTabs(msg.Change)
		return m, nil
	case bridge.SessionsChangedMsg:
		m.archived = msg.Change.Sessions
		m.bundleCursor = clamp(m.bundleCursor, len(m.archived))
		return m, nil
	case bridge.EffectMsg:
		return m, m.applyEffect(msg.Effect)
	case tea.KeyMsg:
		if m.sheet.IsVisible() {
			var cmd tea.Cmd
			m.sheet, cmd = m.sheet.Update(msg)
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyTabs(c home.TabsChange) {
	m.tabs = c.Tabs
	m.private = c.Private
	m.showPrivateDesc = c.ShowPrivateDescription

	m.tabCursor = clamp(m.tabCursor, len(m.tabs))
	for i, tab := range m.tabs {
		if tab.Selected {
			m.tabCursor = i
			break
		}
	}
}

func (m *Model) applyEffect(effect home.Effect) tea.Cmd {
	switch e := effect.(type) {
	case home.SheetEffect:
		m.sheet.Show(e)
	case home.ScrollTopEffect:
		m.tabCursor = 0
		m.bundleCursor = 0
		m.section = SectionTabs
	case home.NoticeEffect:
		return util.ReportInfo(e.Message)
	case home.ModeEffect:
		if e.Private {
			return util.ReportInfo("Private browsing on")
		}
		return util.ReportInfo("Private browsing off")
	}
	return nil
}

//nolint:gocyclo // one branch per binding
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Top):
		m.tabCursor, m.bundleCursor = 0, 0
	case key.Matches(msg, m.keys.Switch):
		if m.section == SectionTabs && len(m.archived) > 0 {
			m.section = SectionArchived
		} else {
			m.section = SectionTabs
		}
	case key.Matches(msg, m.keys.Enter):
		return m.open()
	case key.Matches(msg, m.keys.Close):
		if tab, ok := m.currentTab(); ok {
			return util.Dispatch(home.CloseTab{ID: tab.ID})
		}
		if s, ok := m.currentBundle(); ok {
			return util.Dispatch(home.DeleteArchived{Session: s})
		}
	case key.Matches(msg, m.keys.CloseAll):
		return util.Dispatch(home.CloseAllTabs{Private: m.private})
	case key.Matches(msg, m.keys.Archive):
		return util.Dispatch(home.Archive{})
	case key.Matches(msg, m.keys.Menu):
		return util.Dispatch(home.OpenMenu{})
	case key.Matches(msg, m.keys.ArchivedMenu):
		if s, ok := m.currentBundle(); ok {
			return util.Dispatch(home.ArchivedMenuTapped{Session: s})
		}
	case key.Matches(msg, m.keys.Private):
		return util.Dispatch(home.ToggleMode{})
	case key.Matches(msg, m.keys.Search):
		return util.Dispatch(home.SearchTapped{})
	case key.Matches(msg, m.keys.Settings):
		return util.Dispatch(home.HomeMenuItem{Item: home.MenuSettings})
	case key.Matches(msg, m.keys.Library):
		return util.Dispatch(home.HomeMenuItem{Item: home.MenuLibrary})
	case key.Matches(msg, m.keys.Help):
		return util.Dispatch(home.HomeMenuItem{Item: home.MenuHelp})
	}
	return nil
}

func (m *Model) move(delta int) {
	if m.section == SectionArchived {
		m.bundleCursor = clamp(m.bundleCursor+delta, len(m.archived))
		return
	}
	m.tabCursor = clamp(m.tabCursor+delta, len(m.tabs))
}

func (m *Model) open() tea.Cmd {
	if tab, ok := m.currentTab(); ok {
		return util.Dispatch(home.SelectTab{ID: tab.ID})
	}
	if s, ok := m.currentBundle(); ok {
		return util.Dispatch(home.SelectArchived{Session: s})
	}
	return nil
}

func (m *Model) currentTab() (home.SessionViewState, bool) {
	if m.section != SectionTabs || m.tabCursor >= len(m.tabs) {
		return home.SessionViewState{}, false
	}
	return m.tabs[m.tabCursor], true
}

func (m *Model) currentBundle() (home.ArchivedSession, bool) {
	if m.section != SectionArchived || m.bundleCursor >= len(m.archived) {
		return home.ArchivedSession{}, false
	}
	return m.archived[m.bundleCursor], true
}

// View renders the page.
func (m *Model) View() string {
	if m.sheet.IsVisible() {
		return m.sheet.View()
	}

	t := styles.CurrentTheme()
	width := max(min(m.width-4, 96), 20)

	parts := []string{
		lipgloss.PlaceHorizontal(width, lipgloss.Center, logo.RenderWithTagline(m.private)),
		"",
		m.renderTabs(width),
	}
	if m.showPrivateDesc {
		parts = append(parts, "", t.S().Private.Width(width).Render(privateDescription))
	}
	if !m.private {
		parts = append(parts, "", m.renderArchived(width))
	}
	parts = append(parts, "", t.S().Muted.Width(width).Align(lipgloss.Center).Render(keys.Hints(m.keys.HomeHints())))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderTabs(width int) string {
	t := styles.CurrentTheme()

	heading := "Tabs"
	style := t.S().Subtitle
	if m.private {
		heading = "Private tabs"
		style = t.S().Private
	}
	rows := []string{style.Bold(true).Render(fmt.Sprintf("%s (%d)", heading, len(m.tabs)))}

	if len(m.tabs) == 0 {
		rows = append(rows, t.S().Muted.Render("  No open tabs. Press [/] to search."))
		return strings.Join(rows, "\n")
	}

	for i, tab := range m.tabs {
		focused := m.section == SectionTabs && i == m.tabCursor
		rows = append(rows, renderRow(tab.Title, tab.URL, tab.Selected, focused, width))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderArchived(width int) string {
	t := styles.CurrentTheme()

	rows := []string{t.S().Subtitle.Bold(true).Render(fmt.Sprintf("Archived (%d)", len(m.archived)))}
	if len(m.archived) == 0 {
		rows = append(rows, t.S().Muted.Render("  Archive your tabs with [a] to keep them for later."))
		return strings.Join(rows, "\n")
	}

	for i, s := range m.archived {
		focused := m.section == SectionArchived && i == m.bundleCursor
		title := fmt.Sprintf("%d tabs · %s", len(s.URLs), s.SavedAt.Format("Jan 2 15:04"))
		rows = append(rows, renderRow(title, strings.Join(s.URLs, "  "), false, focused, width))
	}
	return strings.Join(rows, "\n")
}

func renderRow(title, detail string, selected, focused bool, width int) string {
	t := styles.CurrentTheme()

	marker := "  "
	if selected {
		marker = "● "
	}
	titleWidth := max(width/2, 10)
	line := ansi.Truncate(marker+title, titleWidth, "…")
	line += strings.Repeat(" ", max(titleWidth-lipgloss.Width(line), 0)+2)
	line += ansi.Truncate(detail, max(width-titleWidth-2, 4), "…")

	if focused {
		return t.S().Selected.Render(line)
	}
	if selected {
		return t.S().Primary.Render(line)
	}
	return t.S().Text.Render(line)
}

// clamp bounds i to [0, n).
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	return min(i, n-1)
}
