package bundles

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/tui/styles"
)

// SearchBox is a search input with a match count.
type SearchBox struct {
	input   textinput.Model
	panel   *BorderedPanel
	width   int
	matched int
	total   int
	visible bool
}

// NewSearchBox creates a new search box.
func NewSearchBox() *SearchBox {
	ti := textinput.New()
	ti.Placeholder = "Search titles and URLs..."
	ti.CharLimit = 100

	panel := NewBorderedPanel()
	panel.SetTitle("Search")
	panel.SetFocused(true)

	return &SearchBox{
		input: ti,
		panel: panel,
	}
}

// SetWidth sets the search box width.
func (s *SearchBox) SetWidth(width int) {
	s.width = width
	s.panel.SetSize(width, 3)
}

// SetCounts sets the matched and total counts.
func (s *SearchBox) SetCounts(matched, total int) {
	s.matched = matched
	s.total = total
}

// Show makes the search box visible and focuses the input.
func (s *SearchBox) Show() tea.Cmd {
	s.visible = true
	s.input.SetValue("")
	return s.input.Focus()
}

// Hide hides the search box and clears the input.
func (s *SearchBox) Hide() {
	s.visible = false
	s.input.SetValue("")
	s.input.Blur()
}

// IsVisible returns whether the search box is visible.
func (s *SearchBox) IsVisible() bool {
	return s.visible
}

// Value returns the current search text.
func (s *SearchBox) Value() string {
	return s.input.Value()
}

// Update handles messages for the search input.
func (s *SearchBox) Update(msg tea.Msg) (*SearchBox, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the search box.
func (s *SearchBox) View() string {
	if !s.visible {
		return ""
	}

	t := styles.CurrentTheme()

	inputView := s.input.View()
	count := fmt.Sprintf("%d / %d", s.matched, s.total)

	// Inner width: panel width minus borders and padding.
	spacing := max(s.width-4-lipgloss.Width(inputView)-len(count), 1)
	s.panel.SetContent(inputView + strings.Repeat(" ", spacing) + t.S().Muted.Render(count))
	return s.panel.View()
}

// Cursor returns the cursor for the text input.
func (s *SearchBox) Cursor() *tea.Cursor {
	if s.visible {
		return s.input.Cursor()
	}
	return nil
}

// IsFocused returns whether the input is focused.
func (s *SearchBox) IsFocused() bool {
	return s.input.Focused()
}
