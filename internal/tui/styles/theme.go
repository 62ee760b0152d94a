// Package styles holds the TUI theme.
package styles

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is a named color palette.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color
	Private   color.Color

	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles     *Styles
	stylesOnce sync.Once
}

// Styles are the prebuilt lipgloss styles of a theme.
type Styles struct {
	Base     lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Primary  lipgloss.Style
	Private  lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
}

// S returns the theme's styles, building them on first use.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		base := lipgloss.NewStyle().Foreground(t.FgBase)
		t.styles = &Styles{
			Base:     base,
			Text:     base,
			Muted:    lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:   lipgloss.NewStyle().Foreground(t.FgSubtle),
			Title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Subtitle: lipgloss.NewStyle().Foreground(t.Secondary),
			Primary:  lipgloss.NewStyle().Foreground(t.Primary),
			Private:  lipgloss.NewStyle().Foreground(t.Private),
			Selected: lipgloss.NewStyle().Foreground(t.BgBase).Background(t.Primary).Bold(true),
			Success:  lipgloss.NewStyle().Foreground(t.Success),
			Error:    lipgloss.NewStyle().Foreground(t.Error),
			Warning:  lipgloss.NewStyle().Foreground(t.Warning),
			Info:     lipgloss.NewStyle().Foreground(t.Info),
		}
	})
	return t.styles
}

// ParseHex parses a "#rrggbb" color. Invalid input yields black.
func ParseHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Black
	}
	return c
}

// ApplyForegroundGrad colors each rune of s along a gradient from one color
// to the other, line by line.
func ApplyForegroundGrad(s string, from, to color.Color) string {
	a, okA := colorful.MakeColor(from)
	b, okB := colorful.MakeColor(to)
	if !okA || !okB {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			continue
		}

		var sb strings.Builder
		for j, r := range runes {
			pos := 0.0
			if len(runes) > 1 {
				pos = float64(j) / float64(len(runes)-1)
			}
			c := a.BlendLab(b, pos).Clamped()
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

var (
	current *Theme
	themeMu sync.RWMutex
)

// Manager selects the active theme.
type Manager struct {
	themes map[string]*Theme
}

// NewManager registers the built-in themes and activates the default one.
func NewManager() *Manager {
	m := &Manager{themes: map[string]*Theme{}}
	for _, t := range []*Theme{NewDefaultTheme(), NewLightTheme()} {
		m.themes[t.Name] = t
	}
	setCurrent(m.themes["default"])
	return m
}

// SetTheme activates the named theme. It reports false for unknown names.
func (m *Manager) SetTheme(name string) bool {
	t, ok := m.themes[name]
	if ok {
		setCurrent(t)
	}
	return ok
}

func setCurrent(t *Theme) {
	themeMu.Lock()
	current = t
	themeMu.Unlock()
}

// CurrentTheme returns the active theme, falling back to the default.
func CurrentTheme() *Theme {
	themeMu.RLock()
	t := current
	themeMu.RUnlock()
	if t != nil {
		return t
	}

	themeMu.Lock()
	defer themeMu.Unlock()
	if current == nil {
		current = NewDefaultTheme()
	}
	return current
}
