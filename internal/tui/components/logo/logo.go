// Package logo renders the tabhome wordmark.
package logo

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/tui/styles"
)

const wordmark = `
╔╦╗╔═╗╔╗ ╦ ╦╔═╗╔╦╗╔═╗
 ║ ╠═╣╠╩╗╠═╣║ ║║║║║╣
 ╩ ╩ ╩╚═╝╩ ╩╚═╝╩ ╩╚═╝
`

// Render returns the wordmark in the current theme colors. Private mode
// swaps the gradient for the private accent.
func Render(private bool) string {
	t := styles.CurrentTheme()
	mark := strings.TrimPrefix(wordmark, "\n")
	if private {
		return styles.ApplyForegroundGrad(mark, t.Private, t.Accent)
	}
	return styles.ApplyForegroundGrad(mark, t.Primary, t.Secondary)
}

// RenderWithTagline returns the wordmark with a tagline under it.
func RenderWithTagline(private bool) string {
	t := styles.CurrentTheme()

	tagline := t.S().Muted.Render("Your tabs, kept.")
	if private {
		tagline = t.S().Private.Render("Private browsing")
	}
	return lipgloss.JoinVertical(lipgloss.Center, Render(private), "", tagline)
}

// Width returns the width of the wordmark.
func Width() int {
	return lipgloss.Width(strings.TrimPrefix(wordmark, "\n"))
}
