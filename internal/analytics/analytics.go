// Package analytics records usage events.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

// Event names.
const (
	SearchBarTapped = "search_bar_tapped"
	TabsArchived    = "tabs_archived"
	BundleRestored  = "bundle_restored"
	BundleDeleted   = "bundle_deleted"
)

// Event is a single usage metric.
type Event struct {
	Name   string
	Source string
}

// Tracker receives usage events.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

// Nop discards every event.
type Nop struct{}

// Track implements Tracker.
func (Nop) Track(context.Context, Event) {}

// Recorder persists events to the analytics_events table and mirrors them
// to the debug log and an optional broker.
type Recorder struct {
	conn   *sql.DB
	broker pubsub.Publisher[events.AnalyticsEvent]
}

// NewRecorder creates a recorder. The broker may be nil.
func NewRecorder(conn *sql.DB, broker pubsub.Publisher[events.AnalyticsEvent]) *Recorder {
	return &Recorder{conn: conn, broker: broker}
}

// Track records e. Failures are logged and otherwise ignored.
func (r *Recorder) Track(ctx context.Context, e Event) {
	debug.Event("analytics", e.Name, "source="+e.Source)

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO analytics_events (name, source, recorded_at) VALUES (?, ?, ?)`,
		e.Name, e.Source, time.Now().UnixMilli())
	if err != nil {
		debug.Error("analytics", err, "recording "+e.Name)
		return
	}

	if r.broker != nil {
		r.broker.Publish(pubsub.EventCreated, events.NewAnalyticsEvent(e.Name, e.Source))
	}
}

// Counts returns how many times each event name was recorded.
func (r *Recorder) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT name, COUNT(*) FROM analytics_events GROUP BY name ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("counting analytics events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scanning analytics count: %w", err)
		}
		counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("counting analytics events: %w", err)
	}
	return counts, nil
}
