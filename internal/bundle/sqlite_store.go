package bundle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guilhermegouw/tabhome/internal/db"
)

const bundleColumns = `id, is_current, selected_index, created_at, saved_at`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed bundle store.
func NewSQLiteStore(conn *sql.DB) *SQLiteStore {
	return &SQLiteStore{conn: conn}
}

// Save inserts or replaces a bundle. Its tab list is rewritten as a whole.
func (s *SQLiteStore) Save(ctx context.Context, b *Bundle) error {
	if b.ID == "" {
		return errors.New("saving bundle: missing id")
	}

	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.LastSavedAt.IsZero() {
		b.LastSavedAt = now
	}

	err := db.WithTx(ctx, s.conn, func(tx *sql.Tx) error {
		if b.Current {
			if _, err := tx.ExecContext(ctx,
				`UPDATE bundles SET is_current = 0 WHERE is_current = 1 AND id != ?`, b.ID); err != nil {
				return err
			}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO bundles (`+bundleColumns+`)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				is_current = excluded.is_current,
				selected_index = excluded.selected_index,
				saved_at = excluded.saved_at`,
			b.ID, boolToInt(b.Current), b.SelectedIndex,
			b.CreatedAt.UnixMilli(), b.LastSavedAt.UnixMilli())
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM bundle_tabs WHERE bundle_id = ?`, b.ID); err != nil {
			return err
		}
		for i, t := range b.Tabs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO bundle_tabs (bundle_id, position, url, title) VALUES (?, ?, ?, ?)`,
				b.ID, i, t.URL, t.Title); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving bundle: %w", err)
	}

	return nil
}

// Get retrieves a bundle by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Bundle, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+bundleColumns+` FROM bundles WHERE id = ?`, id)
	b, err := scanBundle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting bundle: %w", err)
	}

	if err := s.loadTabs(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Current returns the current bundle.
func (s *SQLiteStore) Current(ctx context.Context) (*Bundle, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT `+bundleColumns+` FROM bundles WHERE is_current = 1 LIMIT 1`)
	b, err := scanBundle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting current bundle: %w", err)
	}

	if err := s.loadTabs(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns up to limit bundles ordered by saved_at descending.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Bundle, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	bundles, err := s.query(ctx,
		`SELECT `+bundleColumns+` FROM bundles ORDER BY saved_at DESC, created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}
	return bundles, nil
}

// Search returns bundles with a tab matching keyword.
// Supports multi-word search: "go docs" matches "go.dev/docs/".
func (s *SQLiteStore) Search(ctx context.Context, keyword string, limit int) ([]*Bundle, error) {
	term := prepareSearchTerm(keyword)
	if term == "" {
		return s.List(ctx, limit)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	pattern := "%" + term + "%"
	bundles, err := s.query(ctx, `
		SELECT `+bundleColumns+` FROM bundles
		WHERE id IN (
			SELECT bundle_id FROM bundle_tabs
			WHERE url LIKE ? OR title LIKE ?
		)
		ORDER BY saved_at DESC, created_at DESC
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching bundles: %w", err)
	}
	return bundles, nil
}

// SetCurrent makes id the only current bundle.
func (s *SQLiteStore) SetCurrent(ctx context.Context, id string) error {
	err := db.WithTx(ctx, s.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE bundles SET is_current = 0 WHERE is_current = 1`); err != nil {
			return err
		}
		if id == "" {
			return nil
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE bundles SET is_current = 1, saved_at = ? WHERE id = ?`, time.Now().UnixMilli(), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("setting current bundle: %w", err)
	}

	return nil
}

// Delete removes a bundle by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM bundles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting bundle: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting bundle: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of stored bundles.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM bundles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bundles: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]*Bundle, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var bundles []*Bundle
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		bundles = append(bundles, b)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Tabs are loaded after the cursor is closed so the pool is never asked
	// for a second connection mid-iteration.
	for _, b := range bundles {
		if err := s.loadTabs(ctx, b); err != nil {
			return nil, err
		}
	}
	return bundles, nil
}

func (s *SQLiteStore) loadTabs(ctx context.Context, b *Bundle) error {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT url, title FROM bundle_tabs WHERE bundle_id = ? ORDER BY position`, b.ID)
	if err != nil {
		return fmt.Errorf("loading bundle tabs: %w", err)
	}
	defer rows.Close()

	b.Tabs = b.Tabs[:0]
	for rows.Next() {
		var t Tab
		if err := rows.Scan(&t.URL, &t.Title); err != nil {
			return fmt.Errorf("scanning bundle tab: %w", err)
		}
		b.Tabs = append(b.Tabs, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loading bundle tabs: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBundle converts a bundles row to a domain bundle.
func scanBundle(row rowScanner) (*Bundle, error) {
	var (
		b         Bundle
		current   int
		createdAt int64
		savedAt   int64
	)
	if err := row.Scan(&b.ID, &current, &b.SelectedIndex, &createdAt, &savedAt); err != nil {
		return nil, err
	}
	b.Current = current != 0
	b.CreatedAt = time.UnixMilli(createdAt)
	b.LastSavedAt = time.UnixMilli(savedAt)
	return &b, nil
}

// prepareSearchTerm converts a search keyword for multi-word matching.
// "go docs" becomes "go%docs".
func prepareSearchTerm(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	return strings.Join(strings.Fields(keyword), "%")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
