package bundles

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/tabhome/internal/bundle"
)

func sample() []*bundle.Bundle {
	now := time.Now()
	return []*bundle.Bundle{
		{ID: "0123456789", LastSavedAt: now, Tabs: []bundle.Tab{{URL: "https://go.dev", Title: "Go"}}},
		{ID: "abcdef", LastSavedAt: now.Add(-2 * time.Hour), Tabs: []bundle.Tab{{URL: "https://lobste.rs"}}},
	}
}

func TestList_Navigation(t *testing.T) {
	l := NewList()
	l.SetSize(80, 20)
	l.SetBundles(sample(), "0123456789", "")

	l, _ = l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if l.Selected().ID != "abcdef" {
		t.Fatalf("expected second bundle, got %s", l.Selected().ID)
	}

	l, cmd := l.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	del, ok := cmd().(DeleteMsg)
	if !ok || del.Bundle.ID != "abcdef" {
		t.Errorf("expected DeleteMsg for abcdef, got %#v", cmd())
	}

	// Shrinking the listing keeps the cursor in range.
	l.SetBundles(sample()[:1], "", "")
	if l.Selected() == nil || l.Selected().ID != "0123456789" {
		t.Errorf("expected cursor clamped to the first bundle")
	}
}

func TestList_View(t *testing.T) {
	l := NewList()
	l.SetSize(80, 20)

	if !strings.Contains(l.View(), "Nothing archived yet") {
		t.Error("expected empty state")
	}

	l.SetBundles(nil, "", "rust")
	if !strings.Contains(l.View(), "No bundles match") {
		t.Error("expected empty search state")
	}

	l.SetBundles(sample(), "0123456789", "")
	view := l.View()
	if !strings.Contains(view, "current") {
		t.Error("expected current bundle marked")
	}
	if !strings.Contains(view, "Bundle abcdef") {
		t.Error("expected untitled bundle named after its ID")
	}
}

func TestBorderedPanel_FitsWidth(t *testing.T) {
	p := NewBorderedPanel()
	p.SetSize(20, 4)
	p.SetTitle("A title far too long for the panel")
	p.SetContent("short\nthis line is much longer than the panel is wide")

	for i, line := range strings.Split(p.View(), "\n") {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
}

func TestHintBar_Modes(t *testing.T) {
	h := NewHintBar()
	if !strings.Contains(h.Text(), "[/] search") {
		t.Errorf("unexpected normal hints %q", h.Text())
	}
	h.SetMode(HintModeDelete)
	if !strings.Contains(h.Text(), "[y] yes") {
		t.Errorf("unexpected delete hints %q", h.Text())
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute + time.Second, "1 min ago"},
		{5 * time.Minute, "5 mins ago"},
		{3 * time.Hour, "3 hours ago"},
		{30 * time.Hour, "yesterday"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatRelativeTime(time.Now().Add(-tt.ago)); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
