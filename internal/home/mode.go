package home

import "sync"

// BrowsingMode tracks whether the home screen shows private tabs.
type BrowsingMode struct {
	private bool
	mu      sync.RWMutex
}

// NewBrowsingMode creates a mode starting in private when private is true.
func NewBrowsingMode(private bool) *BrowsingMode {
	return &BrowsingMode{private: private}
}

// Private reports whether private browsing is active.
func (m *BrowsingMode) Private() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.private
}

// Set switches to the given mode.
func (m *BrowsingMode) Set(private bool) {
	m.mu.Lock()
	m.private = private
	m.mu.Unlock()
}

// Toggle flips the mode and returns the new value.
func (m *BrowsingMode) Toggle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.private = !m.private
	return m.private
}
