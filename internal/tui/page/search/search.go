// Package search lets the user find an open tab or an archived page, or
// open a new tab from a URL or query.
package search

import (
	"context"
	"net/url"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tabs"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

const (
	maxResults = 12
	searchURL  = "https://duckduckgo.com/?q="
)

// TabOpener lists and opens live tabs.
type TabOpener interface {
	Sessions() []tabs.Session
	Add(url, title string, private, selectIt bool) tabs.Session
}

// BundleLister lists archived bundles.
type BundleLister interface {
	Bundles(ctx context.Context, limit int) ([]*bundle.Bundle, error)
}

// Candidate is a searchable page. TabID is set for open tabs.
type Candidate struct {
	Title string
	URL   string
	TabID string
}

// CandidatesMsg carries the pages to search.
type CandidatesMsg struct {
	Candidates []Candidate
}

type candidates []Candidate

func (c candidates) String(i int) string { return c[i].Title + " " + c[i].URL }
func (c candidates) Len() int            { return len(c) }

// Model is the search page.
type Model struct {
	opener  TabOpener
	bundles BundleLister
	mode    *home.BrowsingMode
	limit   int

	input      textinput.Model
	candidates candidates
	results    []Candidate
	cursor     int

	width  int
	height int
}

// New creates the search page. limit caps the bundles searched.
func New(opener TabOpener, bundles BundleLister, mode *home.BrowsingMode, limit int) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search tabs or enter a URL"
	ti.CharLimit = 2048

	return &Model{
		opener:  opener,
		bundles: bundles,
		mode:    mode,
		limit:   limit,
		input:   ti,
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

// Activate clears the query and reloads the candidates.
func (m *Model) Activate() tea.Cmd {
	m.input.SetValue("")
	m.cursor = 0
	return tea.Batch(m.input.Focus(), m.load())
}

func (m *Model) load() tea.Cmd {
	private := m.mode.Private()
	sessions := m.opener.Sessions()
	return func() tea.Msg {
		var out []Candidate
		seen := map[string]bool{}
		for _, s := range sessions {
			if s.Private != private {
				continue
			}
			out = append(out, Candidate{Title: s.Title, URL: s.URL, TabID: s.ID})
			seen[s.URL] = true
		}

		// Archived pages are never offered in private mode.
		if !private {
			bundles, err := m.bundles.Bundles(context.Background(), m.limit)
			if err != nil {
				debug.Error("search", err, "loading bundles")
			}
			for _, b := range bundles {
				for _, tab := range b.Tabs {
					if seen[tab.URL] {
						continue
					}
					seen[tab.URL] = true
					out = append(out, Candidate{Title: tab.Title, URL: tab.URL})
				}
			}
		}
		return CandidatesMsg{Candidates: out}
	}
}

// Results returns the current matches.
func (m *Model) Results() []Candidate {
	return m.results
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CandidatesMsg:
		m.candidates = msg.Candidates
		m.filter()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, util.CmdHandler(page.ChangeMsg{Page: page.Home})
		case "up", "ctrl+p":
			m.cursor = max(m.cursor-1, 0)
			return m, nil
		case "down", "ctrl+n":
			m.cursor = max(min(m.cursor+1, len(m.results)-1), 0)
			return m, nil
		case "enter":
			return m, m.open()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

func (m *Model) filter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.results = append(m.results[:0], m.candidates...)
	} else {
		m.results = m.results[:0]
		for _, match := range fuzzy.FindFrom(query, m.candidates) {
			m.results = append(m.results, m.candidates[match.Index])
		}
	}
	if len(m.results) > maxResults {
		m.results = m.results[:maxResults]
	}
	m.cursor = max(min(m.cursor, len(m.results)-1), 0)
}

func (m *Model) open() tea.Cmd {
	if m.cursor < len(m.results) {
		c := m.results[m.cursor]
		if c.TabID != "" {
			return util.Dispatch(home.SelectTab{ID: c.TabID})
		}
		return m.openNew(c.URL, c.Title)
	}

	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return nil
	}
	return m.openNew(ResolveURL(query), "")
}

func (m *Model) openNew(rawURL, title string) tea.Cmd {
	private := m.mode.Private()
	opener := m.opener
	return func() tea.Msg {
		s := opener.Add(rawURL, title, private, true)
		return page.ChangeMsg{Page: page.Browser, TabID: s.ID}
	}
}

// ResolveURL turns user input into a URL: input that already parses as an
// absolute URL is kept, a bare host gets https, and anything else becomes
// a web search.
func ResolveURL(input string) string {
	input = strings.TrimSpace(input)
	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
		return input
	}
	if !strings.ContainsAny(input, " \t") && strings.Contains(input, ".") {
		if u, err := url.Parse("https://" + input); err == nil && u.Host != "" {
			return u.String()
		}
	}
	return searchURL + url.QueryEscape(input)
}

// View renders the page.
func (m *Model) View() string {
	t := styles.CurrentTheme()
	width := max(min(m.width-8, 96), 20)

	title := t.S().Title.Render("Search")
	if m.mode.Private() {
		title = t.S().Private.Bold(true).Render("Private search")
	}

	rows := []string{title, "", m.input.View(), ""}
	if len(m.results) == 0 {
		hint := "No matches. Press [enter] to open it as a new tab."
		if m.input.Value() == "" {
			hint = "No open or archived pages yet."
		}
		rows = append(rows, t.S().Muted.Render(hint))
	}
	for i, c := range m.results {
		label := c.Title
		if label == "" {
			label = c.URL
		}
		kind := "archived"
		if c.TabID != "" {
			kind = "open"
		}
		line := ansi.Truncate(label, width/2, "…") + "  " +
			t.S().Subtle.Render(ansi.Truncate(c.URL, width/2-12, "…")) + "  " +
			t.S().Muted.Render(kind)
		if i == m.cursor {
			line = t.S().Primary.Bold(true).Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", t.S().Muted.Render("[enter] open  [↑↓] navigate  [esc] back"))

	return lipgloss.NewStyle().Padding(1, 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Cursor returns the input cursor.
func (m *Model) Cursor() *tea.Cursor {
	c := m.input.Cursor()
	if c != nil {
		// Padding plus the title and spacer lines above the input.
		c.X += 4
		c.Y += 3
	}
	return c
}
