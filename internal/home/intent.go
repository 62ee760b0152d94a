package home

// Intent is a user action on the home screen.
type Intent interface {
	intent()
}

// Archive saves and closes the normal tabs.
type Archive struct{}

// OpenMenu opens the session sheet for the current browsing mode.
type OpenMenu struct{}

// SelectTab opens the tab with ID in the browser.
type SelectTab struct{ ID string }

// CloseTab closes the tab with ID.
type CloseTab struct{ ID string }

// CloseAllTabs closes every tab of one browsing mode.
type CloseAllTabs struct{ Private bool }

// SelectArchived archives the live tabs and reopens Session.
type SelectArchived struct{ Session ArchivedSession }

// DeleteArchived removes Session from storage.
type DeleteArchived struct{ Session ArchivedSession }

// ShareArchived shares Session's URLs.
type ShareArchived struct{ Session ArchivedSession }

// ToggleMode flips between normal and private browsing.
type ToggleMode struct{}

// SearchTapped opens search from the home toolbar.
type SearchTapped struct{}

// HomeMenuItem is a pick from the home menu.
type HomeMenuItem struct{ Item MenuItem }

// ArchivedMenuTapped opens the sheet for one archived session.
type ArchivedMenuTapped struct{ Session ArchivedSession }

// SheetArchive is the sheet's save button.
type SheetArchive struct{}

// SheetDelete is the sheet's delete button. Session is set for the
// archived sheet.
type SheetDelete struct {
	Kind    SheetKind
	Session *ArchivedSession
}

func (Archive) intent()            {}
func (OpenMenu) intent()           {}
func (SelectTab) intent()          {}
func (CloseTab) intent()           {}
func (CloseAllTabs) intent()       {}
func (SelectArchived) intent()     {}
func (DeleteArchived) intent()     {}
func (ShareArchived) intent()      {}
func (ToggleMode) intent()         {}
func (SearchTapped) intent()       {}
func (HomeMenuItem) intent()       {}
func (ArchivedMenuTapped) intent() {}
func (SheetArchive) intent()       {}
func (SheetDelete) intent()        {}
