package bundle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guilhermegouw/tabhome/internal/db"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Open(tmpDir + "/test.db")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() }) //nolint:errcheck // Intentionally ignoring close error in test cleanup

	return database
}

func sampleBundle(id string, urls ...string) *Bundle {
	b := &Bundle{ID: id, SelectedIndex: -1}
	for _, u := range urls {
		b.Tabs = append(b.Tabs, Tab{URL: u, Title: u})
	}
	return b
}

func TestSQLiteStore_SaveGet(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteStore(database.Conn())
	ctx := context.Background()

	t.Run("round trips tabs in order", func(t *testing.T) {
		b := sampleBundle("b1", "https://a.example", "https://b.example")
		b.SelectedIndex = 1
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Get(ctx, "b1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Tabs) != 2 || got.Tabs[0].URL != "https://a.example" || got.Tabs[1].URL != "https://b.example" {
			t.Errorf("Tabs = %+v", got.Tabs)
		}
		if got.SelectedIndex != 1 {
			t.Errorf("SelectedIndex = %d, want 1", got.SelectedIndex)
		}
		if got.LastSavedAt.IsZero() || got.CreatedAt.IsZero() {
			t.Error("timestamps should be set")
		}
	})

	t.Run("save replaces tabs", func(t *testing.T) {
		b := sampleBundle("b2", "https://a.example", "https://b.example")
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		b.Tabs = []Tab{{URL: "https://c.example"}}
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("second Save() error = %v", err)
		}

		got, err := store.Get(ctx, "b2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.Tabs) != 1 || got.Tabs[0].URL != "https://c.example" {
			t.Errorf("Tabs = %+v, want only c", got.Tabs)
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		if err := store.Save(ctx, &Bundle{}); err == nil {
			t.Error("expected error for bundle without id")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Get() error = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStore_Current(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteStore(database.Conn())
	ctx := context.Background()

	if _, err := store.Current(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Current() on empty store error = %v, want ErrNotFound", err)
	}

	first := sampleBundle("first", "https://a.example")
	first.Current = true
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := sampleBundle("second", "https://b.example")
	second.Current = true
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.ID != "second" {
		t.Errorf("Current().ID = %q, want second", got.ID)
	}

	if err := store.SetCurrent(ctx, "first"); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	got, err = store.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if got.ID != "first" {
		t.Errorf("Current().ID = %q, want first", got.ID)
	}

	if err := store.SetCurrent(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetCurrent(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.SetCurrent(ctx, ""); err != nil {
		t.Fatalf("SetCurrent(\"\") error = %v", err)
	}
	if _, err := store.Current(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current() after clear error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_List(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteStore(database.Conn())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"old", "mid", "new"} {
		b := sampleBundle(id, "https://"+id+".example")
		b.LastSavedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Save(ctx, b); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := store.List(ctx, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{"new", "mid", "old"}
		if len(got) != len(want) {
			t.Fatalf("len(List()) = %d, want %d", len(got), len(want))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("List()[%d] = %q, want %q", i, got[i].ID, id)
			}
			if len(got[i].Tabs) != 1 {
				t.Errorf("List()[%d] has %d tabs, want 1", i, len(got[i].Tabs))
			}
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		got, err := store.List(ctx, 2)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("len(List(2)) = %d, want 2", len(got))
		}
	})

	t.Run("count", func(t *testing.T) {
		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if n != 3 {
			t.Errorf("Count() = %d, want 3", n)
		}
	})
}

func TestSQLiteStore_Search(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteStore(database.Conn())
	ctx := context.Background()

	if err := store.Save(ctx, sampleBundle("go", "https://go.dev/docs/")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, sampleBundle("rust", "https://doc.rust-lang.org/")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		keyword string
		want    int
	}{
		{keyword: "go docs", want: 1},
		{keyword: "doc", want: 2},
		{keyword: "python", want: 0},
		{keyword: "  ", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got, err := store.Search(ctx, tt.keyword, 10)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len(Search(%q)) = %d, want %d", tt.keyword, len(got), tt.want)
			}
		})
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	database := setupTestDB(t)
	store := NewSQLiteStore(database.Conn())
	ctx := context.Background()

	if err := store.Save(ctx, sampleBundle("gone", "https://a.example")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestPrepareSearchTerm(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  go  ", "go"},
		{"go   docs", "go%docs"},
	}
	for _, tt := range tests {
		if got := prepareSearchTerm(tt.in); got != tt.want {
			t.Errorf("prepareSearchTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
