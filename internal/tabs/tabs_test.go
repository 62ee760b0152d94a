package tabs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

func TestManager_Add(t *testing.T) {
	t.Run("first tab is selected", func(t *testing.T) {
		m := NewManager(nil)
		s := m.Add("https://a.example", "A", false, false)

		if s.ID == "" {
			t.Fatal("expected generated ID")
		}
		if got := m.SelectedID(); got != s.ID {
			t.Errorf("SelectedID() = %q, want %q", got, s.ID)
		}
	})

	t.Run("selectIt moves selection", func(t *testing.T) {
		m := NewManager(nil)
		m.Add("https://a.example", "A", false, false)
		b := m.Add("https://b.example", "B", false, true)

		if got := m.SelectedID(); got != b.ID {
			t.Errorf("SelectedID() = %q, want %q", got, b.ID)
		}
	})

	t.Run("empty title falls back to url", func(t *testing.T) {
		m := NewManager(nil)
		s := m.Add("https://a.example", "", true, false)

		if s.Title != "https://a.example" {
			t.Errorf("Title = %q, want url", s.Title)
		}
		if !s.Private {
			t.Error("expected private tab")
		}
	})
}

func TestManager_Sessions_ReturnsCopy(t *testing.T) {
	m := NewManager(nil)
	m.Add("https://a.example", "A", false, false)

	got := m.Sessions()
	got[0].Title = "changed"

	if m.Sessions()[0].Title != "A" {
		t.Error("Sessions() leaked internal state")
	}
}

func TestManager_Select(t *testing.T) {
	m := NewManager(nil)
	a := m.Add("https://a.example", "A", false, false)
	b := m.Add("https://b.example", "B", false, false)

	if err := m.Select(b); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got, ok := m.Selected(); !ok || got.ID != b.ID {
		t.Errorf("Selected() = %v, %v, want %q", got, ok, b.ID)
	}

	m.Remove(a)
	err := m.Select(a)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(removed) error = %v, want ErrNotFound", err)
	}
}

func TestManager_Remove(t *testing.T) {
	tests := []struct {
		name       string
		remove     int
		wantSelect int // index into the original tabs, -1 for none
	}{
		{name: "selected middle picks next of same mode", remove: 1, wantSelect: 3},
		{name: "selected last picks previous of same mode", remove: 3, wantSelect: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			all := []Session{
				m.Add("https://0.example", "0", false, false),
				m.Add("https://1.example", "1", false, false),
				m.Add("https://2.example", "2", true, false),
				m.Add("https://3.example", "3", false, false),
			}
			if err := m.Select(all[tt.remove]); err != nil {
				t.Fatalf("Select() error = %v", err)
			}

			if !m.Remove(all[tt.remove]) {
				t.Fatal("Remove() = false, want true")
			}

			want := ""
			if tt.wantSelect >= 0 {
				want = all[tt.wantSelect].ID
			}
			if got := m.SelectedID(); got != want {
				t.Errorf("SelectedID() = %q, want %q", got, want)
			}
		})
	}

	t.Run("last tab of a mode clears selection", func(t *testing.T) {
		m := NewManager(nil)
		m.Add("https://n.example", "n", false, false)
		p := m.Add("https://p.example", "p", true, true)

		m.Remove(p)
		if got := m.SelectedID(); got != "" {
			t.Errorf("SelectedID() = %q, want empty", got)
		}
	})

	t.Run("unknown tab is a no-op", func(t *testing.T) {
		m := NewManager(nil)
		m.Add("https://a.example", "A", false, false)

		if m.Remove(Session{ID: "missing"}) {
			t.Error("Remove(unknown) = true, want false")
		}
		if n := len(m.Sessions()); n != 1 {
			t.Errorf("len(Sessions()) = %d, want 1", n)
		}
	})
}

func TestManager_RemoveAllOfType(t *testing.T) {
	m := NewManager(nil)
	m.Add("https://a.example", "A", false, false)
	m.Add("https://b.example", "B", true, false)
	m.Add("https://c.example", "C", true, false)

	if n := m.RemoveAllOfType(true); n != 2 {
		t.Errorf("RemoveAllOfType(true) = %d, want 2", n)
	}
	for _, s := range m.Sessions() {
		if s.Private {
			t.Errorf("private tab %q survived", s.ID)
		}
	}
	if n := m.RemoveAllOfType(true); n != 0 {
		t.Errorf("second RemoveAllOfType(true) = %d, want 0", n)
	}
}

func TestManager_SnapshotRestore(t *testing.T) {
	m := NewManager(nil)
	m.Add("https://a.example", "A", false, false)
	m.Add("https://secret.example", "S", true, false)
	b := m.Add("https://b.example", "B", false, true)

	snap := m.Snapshot()
	if len(snap.Tabs) != 2 {
		t.Fatalf("len(Snapshot().Tabs) = %d, want 2", len(snap.Tabs))
	}
	if snap.SelectedIndex != 1 {
		t.Errorf("SelectedIndex = %d, want 1", snap.SelectedIndex)
	}
	if snap.Tabs[1].URL != b.URL {
		t.Errorf("Tabs[1].URL = %q, want %q", snap.Tabs[1].URL, b.URL)
	}

	fresh := NewManager(nil)
	restored := fresh.Restore(snap)
	if len(restored) != 2 {
		t.Fatalf("Restore() returned %d tabs, want 2", len(restored))
	}
	if got := fresh.SelectedID(); got != restored[1].ID {
		t.Errorf("SelectedID() = %q, want %q", got, restored[1].ID)
	}
	for _, s := range restored {
		if s.Private {
			t.Error("restored tabs must be normal")
		}
	}

	if got := fresh.Restore(Snapshot{SelectedIndex: -1}); got != nil {
		t.Errorf("Restore(empty) = %v, want nil", got)
	}
}

func TestManager_Subscribe(t *testing.T) {
	broker := pubsub.NewBroker("tabs", pubsub.WithDropPolicy[events.TabEvent](false))
	defer broker.Shutdown()

	m := NewManager(broker)
	sub := m.Subscribe(context.Background())
	defer sub.Unsubscribe()

	m.Add("https://a.example", "A", false, true)
	m.RemoveAllOfType(false)

	want := []events.TabEventType{
		events.TabEventAdded,
		events.TabEventSelected,
		events.TabEventAllRemoved,
	}
	for i, w := range want {
		select {
		case e := <-sub.Events():
			if e.Payload.Type != w {
				t.Errorf("event %d = %q, want %q", i, e.Payload.Type, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for event %d", i)
		}
	}
}
