package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/guilhermegouw/tabhome/internal/analytics"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/config"
	"github.com/guilhermegouw/tabhome/internal/db"
	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
	"github.com/guilhermegouw/tabhome/internal/tabs"
)

// services are the long-lived objects shared by the TUI and the
// subcommands.
type services struct {
	cfg      *config.Config
	db       *db.DB
	hub      *pubsub.Hub
	manager  *tabs.Manager
	storage  *bundle.Storage
	recorder *analytics.Recorder
}

// openServices loads the configuration and opens the database.
func openServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	hub := pubsub.NewHub()
	return &services{
		cfg:      cfg,
		db:       database,
		hub:      hub,
		manager:  tabs.NewManager(hub.Tabs),
		storage:  bundle.NewStorage(bundle.NewSQLiteStore(database.Conn()), hub.Bundles),
		recorder: analytics.NewRecorder(database.Conn(), hub.Analytics),
	}, nil
}

// reopenCurrent puts the tabs of the autosave bundle back into the
// manager, so a restart picks up where the last run stopped.
func (s *services) reopenCurrent(ctx context.Context) error {
	current, err := s.storage.Current(ctx)
	if err != nil {
		return fmt.Errorf("loading current bundle: %w", err)
	}
	if current == nil {
		return nil
	}

	err = s.storage.Restore(ctx, s.manager, current)
	if errors.Is(err, bundle.ErrEmptyBundle) {
		return nil
	}
	return err
}

func (s *services) Close() {
	s.hub.Shutdown()
	if err := s.db.Close(); err != nil {
		debug.Error("cmd", err, "closing database")
	}
}
