package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/db"
)

func setupStorage(t *testing.T, ids ...string) *bundle.Storage {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := bundle.NewSQLiteStore(database.Conn())
	for _, id := range ids {
		b := &bundle.Bundle{
			ID:   id,
			Tabs: []bundle.Tab{{URL: "https://" + id + ".example", Title: id}},
		}
		if err := store.Save(context.Background(), b); err != nil {
			t.Fatalf("failed to save bundle: %v", err)
		}
	}
	return bundle.NewStorage(store, nil)
}

func TestFindBundle(t *testing.T) {
	ctx := context.Background()
	s := setupStorage(t, "abc-111", "abd-222", "xyz-333")

	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "full id", id: "xyz-333", want: "xyz-333"},
		{name: "unique prefix", id: "abc", want: "abc-111"},
		{name: "ambiguous prefix", id: "ab", wantErr: true},
		{name: "unknown", id: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := findBundle(ctx, s, tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got bundle %s", b.ID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.ID != tt.want {
				t.Errorf("findBundle(%q) = %s, want %s", tt.id, b.ID, tt.want)
			}
		})
	}
}

func TestFindBundle_NotFoundIsSentinel(t *testing.T) {
	s := setupStorage(t)

	_, err := findBundle(context.Background(), s, "missing")
	if !errors.Is(err, bundle.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPrintBundles(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		printBundles(&buf, nil)
		if !strings.Contains(buf.String(), "No bundles") {
			t.Errorf("unexpected output %q", buf.String())
		}
	})

	t.Run("marks current and falls back to url", func(t *testing.T) {
		var buf bytes.Buffer
		printBundles(&buf, []*bundle.Bundle{{
			ID:      "0123456789",
			Current: true,
			Tabs:    []bundle.Tab{{URL: "https://go.dev"}},
		}})
		out := buf.String()
		if !strings.HasPrefix(out, "* 01234567") {
			t.Errorf("expected current marker and short id, got %q", out)
		}
		if !strings.Contains(out, "https://go.dev") {
			t.Errorf("expected url for untitled tab, got %q", out)
		}
	})
}

func TestPrintCounts(t *testing.T) {
	var buf bytes.Buffer
	printCounts(&buf, map[string]int{"search_bar_tapped": 2, "archive": 1})

	out := buf.String()
	if strings.Index(out, "archive") > strings.Index(out, "search_bar_tapped") {
		t.Errorf("expected sorted names, got %q", out)
	}
}
