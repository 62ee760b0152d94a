package home

// Effect is a UI-only outcome of an intent.
type Effect interface {
	effect()
}

// SheetEffect asks the UI to show a session sheet.
type SheetEffect struct {
	Kind    SheetKind
	Titles  []string
	Session *ArchivedSession
}

// ScrollTopEffect asks the UI to scroll the home list to the top.
type ScrollTopEffect struct{}

// NoticeEffect is a short message for the user.
type NoticeEffect struct{ Message string }

// ModeEffect reports a browsing mode change.
type ModeEffect struct{ Private bool }

func (SheetEffect) effect()     {}
func (ScrollTopEffect) effect() {}
func (NoticeEffect) effect()    {}
func (ModeEffect) effect()      {}
