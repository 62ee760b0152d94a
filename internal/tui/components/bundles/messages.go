// Package bundles provides the library components for browsing archived
// tab bundles.
package bundles

import "github.com/guilhermegouw/tabhome/internal/bundle"

// LoadedMsg carries a fresh bundle listing or search result.
type LoadedMsg struct {
	Bundles   []*bundle.Bundle
	CurrentID string
	Query     string
	Err       error
}

// RestoreMsg is sent when a bundle is chosen from the list.
type RestoreMsg struct {
	Bundle *bundle.Bundle
}

// DeleteMsg is sent to confirm deletion of a bundle.
type DeleteMsg struct {
	Bundle *bundle.Bundle
}

// SearchMsg is sent when the user starts a search.
type SearchMsg struct{}
