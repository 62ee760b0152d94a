package home

import (
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/tabs"
)

// Project returns the sessions whose privacy matches private, in order,
// marking the one with selectedID. An empty selectedID selects nothing.
func Project(sessions []tabs.Session, selectedID string, private bool) []SessionViewState {
	out := make([]SessionViewState, 0, len(sessions))
	for _, s := range sessions {
		if s.Private != private {
			continue
		}
		out = append(out, SessionViewState{
			ID:       s.ID,
			Title:    s.Title,
			URL:      s.URL,
			Selected: selectedID != "" && s.ID == selectedID,
		})
	}
	return out
}

// ProjectArchived maps bundles to archived sessions, dropping the current
// bundle and any bundle without an ID.
func ProjectArchived(bundles []*bundle.Bundle, currentID string) []ArchivedSession {
	out := make([]ArchivedSession, 0, len(bundles))
	for _, b := range bundles {
		if b == nil || b.ID == "" || b.ID == currentID {
			continue
		}
		out = append(out, Archived(b))
	}
	return out
}

// Archived maps a single bundle to its archived session.
func Archived(b *bundle.Bundle) ArchivedSession {
	return ArchivedSession{
		ID:      b.ID,
		Bundle:  b,
		SavedAt: b.LastSavedAt,
		URLs:    b.URLs(),
	}
}

// PrivateDescriptionVisible reports whether the private browsing blurb
// should show: private mode with no private tabs open.
func PrivateDescriptionVisible(sessions []tabs.Session, private bool) bool {
	if !private {
		return false
	}
	for _, s := range sessions {
		if s.Private {
			return false
		}
	}
	return true
}

// Titles returns the titles of the sessions in the given mode.
func Titles(sessions []tabs.Session, private bool) []string {
	out := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.Private == private {
			out = append(out, s.Title)
		}
	}
	return out
}
