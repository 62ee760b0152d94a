package events

import "time"

// AnalyticsEvent is a usage metric recorded by the analytics tracker.
type AnalyticsEvent struct {
	Name      string
	Source    string
	Timestamp time.Time
}

// NewAnalyticsEvent creates an analytics event.
func NewAnalyticsEvent(name, source string) AnalyticsEvent {
	return AnalyticsEvent{
		Name:      name,
		Source:    source,
		Timestamp: time.Now(),
	}
}
