// Package util holds small helpers shared by TUI pages and components.
package util

import (
	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/tabhome/internal/home"
)

// Model is implemented by pages and components that render to a string.
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
}

// InfoType classifies a status message.
type InfoType int

// Status message kinds.
const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeError
)

// InfoMsg is a status line message.
type InfoMsg struct {
	Type InfoType
	Msg  string
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// ReportError reports err on the status line.
func ReportError(err error) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeError, Msg: err.Error()})
}

// ReportSuccess reports a success message on the status line.
func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeSuccess, Msg: msg})
}

// ReportInfo reports a neutral message on the status line.
func ReportInfo(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{Type: InfoTypeInfo, Msg: msg})
}

// IntentMsg asks the root model to hand an intent to the home controller.
type IntentMsg struct {
	Intent home.Intent
}

// Dispatch wraps an intent in a command.
func Dispatch(intent home.Intent) tea.Cmd {
	return CmdHandler(IntentMsg{Intent: intent})
}
