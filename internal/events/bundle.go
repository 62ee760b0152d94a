package events

import "time"

// BundleEventType represents archived bundle event types.
type BundleEventType string

// Bundle event type constants.
const (
	BundleEventSaved    BundleEventType = "saved"
	BundleEventArchived BundleEventType = "archived"
	BundleEventRemoved  BundleEventType = "removed"
	BundleEventRestored BundleEventType = "restored"
)

// BundleEvent reports a change to persisted bundles.
type BundleEvent struct {
	BundleID  string
	Type      BundleEventType
	TabCount  int
	Timestamp time.Time
}

// NewBundleSavedEvent creates an event for an autosave of the current bundle.
func NewBundleSavedEvent(id string, tabs int) BundleEvent {
	return BundleEvent{
		BundleID:  id,
		Type:      BundleEventSaved,
		TabCount:  tabs,
		Timestamp: time.Now(),
	}
}

// NewBundleArchivedEvent creates an event for a bundle that was archived.
func NewBundleArchivedEvent(id string, tabs int) BundleEvent {
	return BundleEvent{
		BundleID:  id,
		Type:      BundleEventArchived,
		TabCount:  tabs,
		Timestamp: time.Now(),
	}
}

// NewBundleRemovedEvent creates a bundle removed event.
func NewBundleRemovedEvent(id string) BundleEvent {
	return BundleEvent{
		BundleID:  id,
		Type:      BundleEventRemoved,
		Timestamp: time.Now(),
	}
}

// NewBundleRestoredEvent creates an event for a bundle reopened as the live
// tab set.
func NewBundleRestoredEvent(id string, tabs int) BundleEvent {
	return BundleEvent{
		BundleID:  id,
		Type:      BundleEventRestored,
		TabCount:  tabs,
		Timestamp: time.Now(),
	}
}
