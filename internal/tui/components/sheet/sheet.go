// Package sheet renders the session action sheet opened from the home menu
// and from an archived session.
package sheet

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// Step is the current step of the sheet.
type Step int

const (
	// StepOptions lists the sheet's tabs and actions.
	StepOptions Step = iota
	// StepDeleteConfirm asks before deleting.
	StepDeleteConfirm
)

// maxRows caps the titles listed in the sheet.
const maxRows = 10

// ClosedMsg is sent when the sheet is dismissed.
type ClosedMsg struct{}

// Sheet is a modal listing one session's tabs with its actions.
type Sheet struct {
	effect  home.SheetEffect
	step    Step
	visible bool
	width   int
	height  int
}

// New creates a hidden sheet.
func New() *Sheet {
	return &Sheet{}
}

// Show opens the sheet for effect.
func (s *Sheet) Show(effect home.SheetEffect) {
	s.effect = effect
	s.step = StepOptions
	s.visible = true
}

// Hide closes the sheet.
func (s *Sheet) Hide() {
	s.visible = false
	s.step = StepOptions
}

// IsVisible returns whether the sheet is visible.
func (s *Sheet) IsVisible() bool {
	return s.visible
}

// Kind returns the kind of the sheet last shown.
func (s *Sheet) Kind() home.SheetKind {
	return s.effect.Kind
}

// Step returns the current step.
func (s *Sheet) Step() Step {
	return s.step
}

// SetSize sets the sheet size.
func (s *Sheet) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update handles messages.
func (s *Sheet) Update(msg tea.Msg) (*Sheet, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !s.visible {
		return s, nil
	}

	if keyMsg.String() == "esc" {
		if s.step == StepDeleteConfirm {
			s.step = StepOptions
			return s, nil
		}
		s.Hide()
		return s, util.CmdHandler(ClosedMsg{})
	}

	switch s.step {
	case StepOptions:
		return s.updateOptions(keyMsg)
	case StepDeleteConfirm:
		return s.updateDeleteConfirm(keyMsg)
	}
	return s, nil
}

func (s *Sheet) updateOptions(msg tea.KeyMsg) (*Sheet, tea.Cmd) {
	kind := s.effect.Kind
	session := s.effect.Session

	switch msg.String() {
	case "s":
		if kind.CanArchive() {
			return s.closeWith(home.SheetArchive{})
		}
	case "d":
		s.step = StepDeleteConfirm
	case "o":
		if kind == home.SheetArchived && session != nil {
			return s.closeWith(home.SelectArchived{Session: *session})
		}
	case "x":
		if kind == home.SheetArchived && session != nil {
			return s.closeWith(home.ShareArchived{Session: *session})
		}
	}
	return s, nil
}

func (s *Sheet) updateDeleteConfirm(msg tea.KeyMsg) (*Sheet, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return s.closeWith(home.SheetDelete{Kind: s.effect.Kind, Session: s.effect.Session})
	case "n", "N":
		s.step = StepOptions
	}
	return s, nil
}

func (s *Sheet) closeWith(intent home.Intent) (*Sheet, tea.Cmd) {
	s.Hide()
	return s, tea.Batch(util.CmdHandler(ClosedMsg{}), util.Dispatch(intent))
}

// View renders the sheet.
func (s *Sheet) View() string {
	if !s.visible {
		return ""
	}

	t := styles.CurrentTheme()

	boxWidth := min(s.width-4, 72)
	contentWidth := boxWidth - 6

	var content, footer string
	switch s.step {
	case StepOptions:
		content = s.renderTitles(contentWidth)
		footer = s.optionsFooter()
	case StepDeleteConfirm:
		content = s.renderDeleteConfirm()
		footer = "[y] Yes  [n] No  [esc] Cancel"
	}

	border := t.BorderFocus
	if s.effect.Kind == home.SheetPrivate {
		border = t.Private
	}

	inner := lipgloss.JoinVertical(lipgloss.Left,
		t.S().Title.Width(contentWidth).Align(lipgloss.Center).MarginBottom(1).Render(s.effect.Kind.Title()),
		lipgloss.NewStyle().Width(contentWidth).Render(content),
		t.S().Muted.Width(contentWidth).Align(lipgloss.Center).MarginTop(1).Render(footer),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(boxWidth).
		Render(inner)

	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, box)
}

func (s *Sheet) renderTitles(width int) string {
	t := styles.CurrentTheme()

	if len(s.effect.Titles) == 0 {
		return t.S().Muted.Render("No tabs.")
	}

	rows := make([]string, 0, maxRows+1)
	for i, title := range s.effect.Titles {
		if i == maxRows {
			rows = append(rows, t.S().Muted.Render(fmt.Sprintf("… and %d more", len(s.effect.Titles)-maxRows)))
			break
		}
		rows = append(rows, t.S().Text.Render(ansi.Truncate("• "+title, width, "…")))
	}
	return strings.Join(rows, "\n")
}

func (s *Sheet) optionsFooter() string {
	switch s.effect.Kind {
	case home.SheetCurrent:
		return "[s] Save  [d] Delete  [esc] Close"
	case home.SheetArchived:
		return "[o] Open  [x] Share  [d] Delete  [esc] Close"
	default:
		return "[d] Delete  [esc] Close"
	}
}

func (s *Sheet) renderDeleteConfirm() string {
	t := styles.CurrentTheme()

	var target, warning string
	switch s.effect.Kind {
	case home.SheetArchived:
		target = "this archived session"
		warning = "The bundle is removed from the library."
	case home.SheetPrivate:
		target = "all private tabs"
		warning = "Private tabs are never saved."
	default:
		target = "all open tabs"
		warning = "The autosaved bundle is removed as well."
	}

	var sb strings.Builder
	sb.WriteString(t.S().Text.Render("Close "))
	sb.WriteString(t.S().Primary.Bold(true).Render(target))
	sb.WriteString(t.S().Text.Render("?\n\n"))
	sb.WriteString(t.S().Warning.Render(warning))
	return sb.String()
}
