package search

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tabs"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

type fakeBundles struct {
	bundles []*bundle.Bundle
	err     error
}

func (f *fakeBundles) Bundles(context.Context, int) ([]*bundle.Bundle, error) {
	return f.bundles, f.err
}

func setup(t *testing.T, private bool) (*Model, *tabs.Manager) {
	t.Helper()
	mgr := tabs.NewManager(nil)
	mgr.Add("https://go.dev", "The Go Programming Language", false, true)
	mgr.Add("https://pkg.go.dev", "Go Packages", false, false)
	mgr.Add("https://secret.example", "Secret", true, false)

	store := &fakeBundles{bundles: []*bundle.Bundle{{
		ID: "b-1",
		Tabs: []bundle.Tab{
			{URL: "https://go.dev", Title: "duplicate of an open tab"},
			{URL: "https://news.ycombinator.com", Title: "Hacker News"},
		},
	}}}

	m := New(mgr, store, home.NewBrowsingMode(private), 25)
	m.SetSize(100, 30)
	m.Activate()
	m.Update(m.load()())
	return m, mgr
}

func query(m *Model, q string) {
	m.input.SetValue(q)
	m.filter()
}

func TestModel_Candidates(t *testing.T) {
	t.Run("normal mode merges open tabs and archived pages", func(t *testing.T) {
		m, _ := setup(t, false)

		got := m.Results()
		if len(got) != 3 {
			t.Fatalf("expected 3 candidates, got %d: %v", len(got), got)
		}
		if got[2].URL != "https://news.ycombinator.com" || got[2].TabID != "" {
			t.Errorf("expected archived page last, got %+v", got[2])
		}
	})

	t.Run("private mode only offers private tabs", func(t *testing.T) {
		m, _ := setup(t, true)

		got := m.Results()
		if len(got) != 1 || got[0].Title != "Secret" {
			t.Errorf("expected only the private tab, got %v", got)
		}
	})

	t.Run("bundle errors still list open tabs", func(t *testing.T) {
		mgr := tabs.NewManager(nil)
		mgr.Add("https://go.dev", "Go", false, true)
		m := New(mgr, &fakeBundles{err: errors.New("db closed")}, home.NewBrowsingMode(false), 25)
		m.Update(m.load()())

		if len(m.Results()) != 1 {
			t.Errorf("expected 1 candidate, got %d", len(m.Results()))
		}
	})
}

func TestModel_FuzzyFilter(t *testing.T) {
	m, _ := setup(t, false)

	query(m, "hacker")
	got := m.Results()
	if len(got) != 1 || got[0].Title != "Hacker News" {
		t.Errorf("expected Hacker News, got %v", got)
	}

	query(m, "zzzz")
	if len(m.Results()) != 0 {
		t.Errorf("expected no results, got %v", m.Results())
	}
}

func TestModel_Open(t *testing.T) {
	t.Run("open tab dispatches select", func(t *testing.T) {
		m, _ := setup(t, false)
		query(m, "packages")

		_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		msg, ok := cmd().(util.IntentMsg)
		if !ok {
			t.Fatalf("expected IntentMsg, got %T", cmd())
		}
		sel, ok := msg.Intent.(home.SelectTab)
		if !ok || sel.ID == "" {
			t.Errorf("expected SelectTab, got %#v", msg.Intent)
		}
	})

	t.Run("archived page opens a new tab", func(t *testing.T) {
		m, mgr := setup(t, false)
		query(m, "hacker")

		_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		change, ok := cmd().(page.ChangeMsg)
		if !ok || change.Page != page.Browser {
			t.Fatalf("expected browser page change, got %#v", cmd())
		}
		s, ok := mgr.FindByID(change.TabID)
		if !ok || s.URL != "https://news.ycombinator.com" {
			t.Errorf("expected new tab for the archived page, got %+v", s)
		}
		if mgr.SelectedID() != s.ID {
			t.Error("expected the new tab selected")
		}
	})

	t.Run("unmatched input opens a private tab in private mode", func(t *testing.T) {
		m, mgr := setup(t, true)
		query(m, "example.org")

		_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		change := cmd().(page.ChangeMsg)
		s, ok := mgr.FindByID(change.TabID)
		if !ok || !s.Private || s.URL != "https://example.org" {
			t.Errorf("expected private tab for example.org, got %+v", s)
		}
	})
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://go.dev/doc", "https://go.dev/doc"},
		{"go.dev", "https://go.dev"},
		{"  pkg.go.dev/fmt ", "https://pkg.go.dev/fmt"},
		{"golang generics", "https://duckduckgo.com/?q=golang+generics"},
		{"localhost", "https://duckduckgo.com/?q=localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ResolveURL(tt.input); got != tt.want {
				t.Errorf("ResolveURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModel_Escape(t *testing.T) {
	m, _ := setup(t, false)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	change, ok := cmd().(page.ChangeMsg)
	if !ok || change.Page != page.Home {
		t.Errorf("expected change to home, got %#v", change)
	}
}
