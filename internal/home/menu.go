package home

// MenuItem is an entry in the home menu.
type MenuItem int

// Home menu entries.
const (
	MenuSettings MenuItem = iota
	MenuLibrary
	MenuHelp
)

// MenuItems lists the home menu in display order.
var MenuItems = []MenuItem{MenuSettings, MenuLibrary, MenuHelp}

func (m MenuItem) String() string {
	switch m {
	case MenuSettings:
		return "Settings"
	case MenuLibrary:
		return "Library"
	case MenuHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// SheetKind identifies which session sheet is open.
type SheetKind int

// Sheet kinds.
const (
	SheetCurrent SheetKind = iota
	SheetPrivate
	SheetArchived
)

// SheetFor returns the sheet kind for the live tabs of a browsing mode.
func SheetFor(private bool) SheetKind {
	if private {
		return SheetPrivate
	}
	return SheetCurrent
}

// Title is the sheet heading.
func (k SheetKind) Title() string {
	switch k {
	case SheetPrivate:
		return "Private session"
	case SheetArchived:
		return "Archived session"
	default:
		return "Current session"
	}
}

// CanArchive reports whether the sheet offers the save button. Private
// tabs are never archived, and archived ones already are.
func (k SheetKind) CanArchive() bool {
	return k == SheetCurrent
}
