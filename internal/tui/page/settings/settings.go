// Package settings edits the global config file.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/config"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// SavedMsg reports the outcome of writing a field.
type SavedMsg struct {
	Key   string
	Value any
	Err   error
}

// Model is the settings page.
type Model struct {
	cfg  *config.Config
	path string
	save func(path, key string, value any) error

	cursor  int
	editing bool
	input   textinput.Model

	width  int
	height int
}

// New creates the settings page writing to the config file at path.
func New(cfg *config.Config, path string) *Model {
	ti := textinput.New()
	ti.CharLimit = 512

	return &Model{
		cfg:   cfg,
		path:  path,
		save:  config.SetField,
		input: ti,
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

// Editing reports whether a field is being edited.
func (m *Model) Editing() bool {
	return m.editing
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SavedMsg:
		if msg.Err != nil {
			return m, util.ReportError(msg.Err)
		}
		m.cfg.Apply(msg.Key, msg.Value)
		if strings.HasPrefix(msg.Key, "options.") || msg.Key == "home.theme" {
			return m, util.ReportSuccess(fmt.Sprintf("Saved %s. It takes effect on next start.", msg.Key))
		}
		return m, util.ReportSuccess("Saved " + msg.Key)
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m, m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return util.CmdHandler(page.ChangeMsg{Page: page.Home})
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(config.Fields)-1)
	case "enter", " ":
		f := config.Fields[m.cursor]
		if f.Kind == config.FieldBool {
			current, _ := strconv.ParseBool(m.cfg.Value(f.Key))
			return m.write(f.Key, !current)
		}
		m.editing = true
		m.input.SetValue(m.cfg.Value(f.Key))
		m.input.CursorEnd()
		return m.input.Focus()
	}
	return nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (util.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		key := config.Fields[m.cursor].Key
		value, err := config.ParseFieldValue(key, strings.TrimSpace(m.input.Value()))
		if err != nil {
			return m, util.ReportError(err)
		}
		m.stopEditing()
		return m, m.write(key, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) write(key string, value any) tea.Cmd {
	path, save := m.path, m.save
	return func() tea.Msg {
		return SavedMsg{Key: key, Value: value, Err: save(path, key, value)}
	}
}

// View renders the page.
func (m *Model) View() string {
	t := styles.CurrentTheme()

	rows := []string{t.S().Title.Render("Settings"), t.S().Muted.Render(m.path), ""}
	for i, f := range config.Fields {
		value := m.cfg.Value(f.Key)
		if m.editing && i == m.cursor {
			value = m.input.View()
		}

		line := fmt.Sprintf("%-24s %s", f.Key, value)
		if i == m.cursor {
			rows = append(rows, t.S().Primary.Bold(true).Render("> ")+t.S().Text.Render(line))
		} else {
			rows = append(rows, "  "+t.S().Text.Render(line))
		}
		rows = append(rows, t.S().Subtle.Render("    "+f.Description))
	}

	hints := "[enter] edit/toggle  [↑↓] navigate  [esc] back"
	if m.editing {
		hints = "[enter] save  [esc] cancel"
	}
	rows = append(rows, "", t.S().Muted.Render(hints))

	return lipgloss.NewStyle().Padding(1, 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
