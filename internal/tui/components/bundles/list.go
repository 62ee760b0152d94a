package bundles

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// List displays bundles with keyboard navigation.
type List struct {
	bundles   []*bundle.Bundle
	currentID string
	query     string
	cursor    int
	offset    int // Scroll offset
	width     int
	height    int
}

// NewList creates an empty bundle list.
func NewList() *List {
	return &List{}
}

// SetBundles replaces the listed bundles. currentID marks the autosave
// bundle and query is the search that produced the listing, if any.
func (l *List) SetBundles(bundles []*bundle.Bundle, currentID, query string) {
	l.bundles = bundles
	l.currentID = currentID
	l.query = query

	if l.cursor >= len(l.bundles) {
		l.cursor = max(0, len(l.bundles)-1)
	}
	l.ensureVisible()
}

// Len returns the number of listed bundles.
func (l *List) Len() int {
	return len(l.bundles)
}

// SetSize sets the list dimensions.
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Selected returns the bundle under the cursor.
func (l *List) Selected() *bundle.Bundle {
	if l.cursor >= 0 && l.cursor < len(l.bundles) {
		return l.bundles[l.cursor]
	}
	return nil
}

// Update handles messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
			l.ensureVisible()
		}
	case "down", "j":
		if l.cursor < len(l.bundles)-1 {
			l.cursor++
			l.ensureVisible()
		}
	case "home", "g":
		l.cursor = 0
		l.offset = 0
	case "end", "G":
		l.cursor = max(0, len(l.bundles)-1)
		l.ensureVisible()
	case "enter":
		if selected := l.Selected(); selected != nil {
			return l, util.CmdHandler(RestoreMsg{Bundle: selected})
		}
	case "d":
		if selected := l.Selected(); selected != nil {
			return l, util.CmdHandler(DeleteMsg{Bundle: selected})
		}
	case "/":
		return l, util.CmdHandler(SearchMsg{})
	}

	return l, nil
}

func (l *List) ensureVisible() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	} else if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
}

func (l *List) visibleRows() int {
	// Each bundle takes 2 lines (title + urls).
	return max(1, (l.height-2)/2)
}

// View renders the bundle list.
func (l *List) View() string {
	t := styles.CurrentTheme()

	if len(l.bundles) == 0 {
		empty := t.S().Muted.
			Width(l.width).
			Align(lipgloss.Center).
			Padding(2, 0)
		if l.query != "" {
			return empty.Render("No bundles match your search.")
		}
		return empty.Render("Nothing archived yet. Archive your tabs from home.")
	}

	end := min(l.offset+l.visibleRows(), len(l.bundles))
	rows := make([]string, 0, end-l.offset+2)

	if l.offset > 0 {
		rows = append(rows, t.S().Muted.Render(fmt.Sprintf("  ↑ %d more above", l.offset)))
	}
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderBundle(l.bundles[i], i == l.cursor))
	}
	if remaining := len(l.bundles) - end; remaining > 0 {
		rows = append(rows, t.S().Muted.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
	}

	return strings.Join(rows, "\n")
}

func (l *List) renderBundle(b *bundle.Bundle, selected bool) string {
	t := styles.CurrentTheme()

	title := bundleTitle(b)
	meta := fmt.Sprintf("%d tabs · %s", len(b.Tabs), formatRelativeTime(b.LastSavedAt))
	if b.ID == l.currentID {
		meta += " · current"
	}
	title = ansi.Truncate(title, max(l.width-lipgloss.Width(meta)-6, 8), "…")
	urls := ansi.Truncate(strings.Join(b.URLs(), "  "), max(l.width-4, 8), "…")

	var sb strings.Builder
	if selected {
		sb.WriteString(t.S().Primary.Bold(true).Render("> " + title))
		sb.WriteString("  ")
		sb.WriteString(t.S().Muted.Render(meta))
		sb.WriteString("\n")
		sb.WriteString(t.S().Text.Render("  " + urls))
	} else {
		sb.WriteString(t.S().Text.Render("  " + title))
		sb.WriteString("  ")
		sb.WriteString(t.S().Muted.Render(meta))
		sb.WriteString("\n")
		sb.WriteString(t.S().Subtle.Render("  " + urls))
	}
	return sb.String()
}

// bundleTitle names a bundle after its first titled tab.
func bundleTitle(b *bundle.Bundle) string {
	for _, tab := range b.Tabs {
		if tab.Title != "" {
			return tab.Title
		}
	}
	return "Bundle " + shortID(b.ID)
}
