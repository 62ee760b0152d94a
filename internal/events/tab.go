// Package events defines the domain events carried by the pub/sub hub.
package events

import "time"

// TabEventType represents tab-set event types.
type TabEventType string

// Tab event type constants. They mirror the notifications a browser session
// manager gives its observers.
const (
	TabEventAdded      TabEventType = "added"
	TabEventRemoved    TabEventType = "removed"
	TabEventSelected   TabEventType = "selected"
	TabEventRestored   TabEventType = "restored"
	TabEventAllRemoved TabEventType = "all_removed"
)

// TabEvent reports a change to the live tab set.
type TabEvent struct {
	TabID     string
	Private   bool
	Type      TabEventType
	Count     int // Tabs affected, for restored and all_removed
	Timestamp time.Time
}

// NewTabAddedEvent creates a tab added event.
func NewTabAddedEvent(id string, private bool) TabEvent {
	return TabEvent{
		TabID:     id,
		Private:   private,
		Type:      TabEventAdded,
		Count:     1,
		Timestamp: time.Now(),
	}
}

// NewTabRemovedEvent creates a tab removed event.
func NewTabRemovedEvent(id string, private bool) TabEvent {
	return TabEvent{
		TabID:     id,
		Private:   private,
		Type:      TabEventRemoved,
		Count:     1,
		Timestamp: time.Now(),
	}
}

// NewTabSelectedEvent creates a tab selected event.
func NewTabSelectedEvent(id string, private bool) TabEvent {
	return TabEvent{
		TabID:     id,
		Private:   private,
		Type:      TabEventSelected,
		Count:     1,
		Timestamp: time.Now(),
	}
}

// NewTabsRestoredEvent creates an event for a snapshot restore.
func NewTabsRestoredEvent(count int) TabEvent {
	return TabEvent{
		Type:      TabEventRestored,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// NewAllTabsRemovedEvent creates an event for a bulk removal.
func NewAllTabsRemovedEvent(private bool, count int) TabEvent {
	return TabEvent{
		Private:   private,
		Type:      TabEventAllRemoved,
		Count:     count,
		Timestamp: time.Now(),
	}
}
