package bundles

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/tui/styles"
)

// BorderedPanel renders content inside a bordered box with a centered title.
type BorderedPanel struct {
	title   string
	content string
	width   int
	height  int
	focused bool
}

// NewBorderedPanel creates a new bordered panel.
func NewBorderedPanel() *BorderedPanel {
	return &BorderedPanel{}
}

// SetTitle sets the title to display in the top border.
func (p *BorderedPanel) SetTitle(title string) {
	p.title = title
}

// SetContent sets the content to render inside the panel.
func (p *BorderedPanel) SetContent(content string) {
	p.content = content
}

// SetSize sets the panel dimensions.
func (p *BorderedPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether the panel has focus (affects border color).
func (p *BorderedPanel) SetFocused(focused bool) {
	p.focused = focused
}

// View renders the bordered panel.
func (p *BorderedPanel) View() string {
	t := styles.CurrentTheme()

	borderColor := t.Border
	if p.focused {
		borderColor = t.BorderFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	// ╭ + inner + ╮ = width; one space of padding each side inside.
	borderWidth := max(p.width-2, 4)
	contentWidth := borderWidth - 2

	title := ansi.Truncate(p.title, max(borderWidth-4, 1), "…")
	titleRendered := t.S().Primary.Bold(true).Render(title)

	remaining := max(borderWidth-lipgloss.Width(titleRendered), 0)
	left := remaining / 2
	right := remaining - left

	lines := make([]string, 0, p.height)
	lines = append(lines, borderStyle.Render("╭"+strings.Repeat("─", left))+
		titleRendered+
		borderStyle.Render(strings.Repeat("─", right)+"╮"))

	contentLines := strings.Split(p.content, "\n")
	for i := range max(p.height-2, 1) {
		line := ""
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, borderStyle.Render("│ ")+fit(line, contentWidth)+borderStyle.Render(" │"))
	}

	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", borderWidth)+"╯"))
	return strings.Join(lines, "\n")
}

// fit pads or truncates a styled line to exactly width cells.
func fit(line string, width int) string {
	w := lipgloss.Width(line)
	switch {
	case w < width:
		return line + strings.Repeat(" ", width-w)
	case w > width:
		return ansi.Truncate(line, width, "…")
	default:
		return line
	}
}
