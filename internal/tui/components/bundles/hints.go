package bundles

import (
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/tui/styles"
)

// HintMode represents the current mode for hint display.
type HintMode int

const (
	// HintModeNormal shows hints for browsing the list.
	HintModeNormal HintMode = iota
	// HintModeSearch shows hints while typing a search.
	HintModeSearch
	// HintModeDelete shows hints for delete confirmation.
	HintModeDelete
)

// HintBar displays context-sensitive keyboard hints.
type HintBar struct {
	mode  HintMode
	width int
}

// NewHintBar creates a new hint bar.
func NewHintBar() *HintBar {
	return &HintBar{mode: HintModeNormal}
}

// SetMode sets the current hint mode.
func (h *HintBar) SetMode(mode HintMode) {
	h.mode = mode
}

// Mode returns the current hint mode.
func (h *HintBar) Mode() HintMode {
	return h.mode
}

// SetWidth sets the hint bar width.
func (h *HintBar) SetWidth(width int) {
	h.width = width
}

// Text returns the hints for the current mode.
func (h *HintBar) Text() string {
	switch h.mode {
	case HintModeSearch:
		return "[enter] done  [esc] clear  [↑↓] navigate"
	case HintModeDelete:
		return "[y] yes  [n] no  [esc] cancel"
	default:
		return "[/] search  [enter] restore  [d] delete  [esc] back"
	}
}

// View renders the hint bar.
func (h *HintBar) View() string {
	t := styles.CurrentTheme()
	return t.S().Muted.
		Width(h.width).
		Align(lipgloss.Center).
		Render(h.Text())
}
