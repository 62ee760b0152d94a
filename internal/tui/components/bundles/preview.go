package bundles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
)

// Preview shows the tabs of the selected bundle.
type Preview struct {
	bundle *bundle.Bundle
	panel  *BorderedPanel
	width  int
	height int
}

// NewPreview creates a new bundle preview panel.
func NewPreview() *Preview {
	return &Preview{panel: NewBorderedPanel()}
}

// SetBundle sets the bundle to preview.
func (p *Preview) SetBundle(b *bundle.Bundle) {
	p.bundle = b
}

// SetSize sets the preview panel dimensions.
func (p *Preview) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.panel.SetSize(width, height)
}

// Title returns the title for the preview panel.
func (p *Preview) Title() string {
	if p.bundle == nil {
		return "Preview"
	}
	return bundleTitle(p.bundle)
}

// View renders the preview panel.
func (p *Preview) View() string {
	t := styles.CurrentTheme()

	p.panel.SetTitle(p.Title())
	if p.bundle == nil {
		p.panel.SetContent(t.S().Muted.Render("Select a bundle to preview"))
		return p.panel.View()
	}

	p.panel.SetContent(p.buildContent())
	return p.panel.View()
}

func (p *Preview) buildContent() string {
	t := styles.CurrentTheme()
	b := p.bundle
	width := max(p.width-4, 10)

	parts := []string{
		t.S().Muted.Render(fmt.Sprintf("ID: %s", shortID(b.ID))),
		t.S().Muted.Render(fmt.Sprintf("Created: %s", formatDateTime(b.CreatedAt))),
		t.S().Muted.Render(fmt.Sprintf("Saved: %s", formatRelativeTime(b.LastSavedAt))),
		t.S().Muted.Render(fmt.Sprintf("Tabs: %d", len(b.Tabs))),
		"",
	}

	for i, tab := range b.Tabs {
		marker := "  "
		style := t.S().Text
		if i == b.SelectedIndex {
			marker = "● "
			style = t.S().Primary
		}
		title := tab.Title
		if title == "" {
			title = tab.URL
		}
		parts = append(parts,
			style.Render(ansi.Truncate(marker+title, width, "…")),
			t.S().Subtle.Render(ansi.Truncate("  "+tab.URL, width, "…")),
		)
	}

	return strings.Join(parts, "\n")
}
