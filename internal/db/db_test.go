package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() }) //nolint:errcheck // Intentionally ignoring close error in test cleanup

	return database
}

func TestOpen(t *testing.T) {
	t.Run("creates database file in nested directories", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

		database, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer func() { _ = database.Close() }() //nolint:errcheck // Intentionally ignoring close error in test cleanup

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if database.Path() != dbPath {
			t.Errorf("Path() = %q, want %q", database.Path(), dbPath)
		}
	})

	t.Run("runs migrations", func(t *testing.T) {
		database := openTestDB(t)
		ctx := context.Background()

		for _, table := range []string{"bundles", "bundle_tabs", "analytics_events"} {
			var name string
			err := database.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if err != nil {
				t.Errorf("%s table not created: %v", table, err)
			}
		}

		version, err := database.SchemaVersion()
		if err != nil {
			t.Fatalf("SchemaVersion() error = %v", err)
		}
		if version != 2 {
			t.Errorf("SchemaVersion() = %d, want 2", version)
		}
	})

	t.Run("reopening is idempotent", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")

		first, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		_ = first.Close() //nolint:errcheck // Intentionally ignoring close error in test

		second, err := Open(dbPath)
		if err != nil {
			t.Fatalf("second Open() error = %v", err)
		}
		_ = second.Close() //nolint:errcheck // Intentionally ignoring close error in test
	})

	t.Run("enables WAL mode and foreign keys", func(t *testing.T) {
		database := openTestDB(t)
		ctx := context.Background()

		var journalMode string
		if err := database.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode); err != nil {
			t.Fatalf("failed to get journal_mode: %v", err)
		}
		if journalMode != "wal" {
			t.Errorf("journal_mode = %q, want %q", journalMode, "wal")
		}

		var foreignKeys int
		if err := database.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
			t.Fatalf("failed to get foreign_keys: %v", err)
		}
		if foreignKeys != 1 {
			t.Errorf("foreign_keys = %d, want 1", foreignKeys)
		}
	})
}

func TestDB_WithTx(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	insert := `INSERT INTO bundles (id, created_at, saved_at) VALUES (?, 0, 0)`

	t.Run("commits on success", func(t *testing.T) {
		err := database.WithTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "tx-commit")
			return err
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}

		var id string
		if err := database.QueryRowContext(ctx, "SELECT id FROM bundles WHERE id = 'tx-commit'").Scan(&id); err != nil {
			t.Errorf("committed row not found: %v", err)
		}
	})

	t.Run("rolls back on error", func(t *testing.T) {
		errBoom := errors.New("boom")
		err := database.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "tx-rollback"); err != nil {
				return err
			}
			return errBoom
		})
		if !errors.Is(err, errBoom) {
			t.Fatalf("WithTx() error = %v, want %v", err, errBoom)
		}

		var id string
		err = database.QueryRowContext(ctx, "SELECT id FROM bundles WHERE id = 'tx-rollback'").Scan(&id)
		if !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("rolled back row should not exist, got err = %v", err)
		}
	})

	t.Run("cascades bundle tab deletes", func(t *testing.T) {
		err := database.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "cascade"); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO bundle_tabs (bundle_id, position, url) VALUES ('cascade', 0, 'https://example.com')`)
			return err
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}

		if _, err := database.ExecContext(ctx, "DELETE FROM bundles WHERE id = 'cascade'"); err != nil {
			t.Fatalf("delete error = %v", err)
		}

		var n int
		if err := database.QueryRowContext(ctx, "SELECT COUNT(*) FROM bundle_tabs WHERE bundle_id = 'cascade'").Scan(&n); err != nil {
			t.Fatalf("count error = %v", err)
		}
		if n != 0 {
			t.Errorf("bundle_tabs rows = %d, want 0", n)
		}
	})
}

func TestDB_Close(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := database.Conn().PingContext(context.Background()); err == nil {
		t.Error("connection should be closed")
	}
}
