// Package page identifies the top-level TUI pages.
package page

// ID names a page.
type ID string

// Pages.
const (
	Home     ID = "home"
	Browser  ID = "browser"
	Search   ID = "search"
	Settings ID = "settings"
	Library  ID = "library"
)

// ChangeMsg switches the visible page. TabID is set for the browser page.
type ChangeMsg struct {
	Page  ID
	TabID string
}
