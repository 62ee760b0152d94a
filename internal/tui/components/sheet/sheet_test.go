package sheet

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var escape = tea.KeyPressMsg{Code: tea.KeyEscape}

// intents runs cmd and collects the intents it dispatches.
func intents(cmd tea.Cmd) []home.Intent {
	if cmd == nil {
		return nil
	}
	var out []home.Intent
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, intents(c)...)
		}
	case util.IntentMsg:
		out = append(out, msg.Intent)
	}
	return out
}

func TestSheet_ShowHide(t *testing.T) {
	s := New()
	if s.IsVisible() {
		t.Fatal("new sheet should be hidden")
	}
	if s.View() != "" {
		t.Error("hidden sheet should render nothing")
	}

	s.SetSize(80, 24)
	s.Show(home.SheetEffect{Kind: home.SheetCurrent, Titles: []string{"Go", "News"}})
	if !s.IsVisible() {
		t.Fatal("expected sheet visible")
	}
	if s.View() == "" {
		t.Error("visible sheet should render")
	}

	_, cmd := s.Update(escape)
	if s.IsVisible() {
		t.Error("esc should hide the sheet")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Error("expected ClosedMsg")
	}
}

func TestSheet_Actions(t *testing.T) {
	archived := &home.ArchivedSession{ID: "b-1"}

	tests := []struct {
		name   string
		effect home.SheetEffect
		keys   []tea.Msg
		want   home.Intent
	}{
		{
			name:   "save on current sheet",
			effect: home.SheetEffect{Kind: home.SheetCurrent},
			keys:   []tea.Msg{press('s')},
			want:   home.SheetArchive{},
		},
		{
			name:   "save ignored on private sheet",
			effect: home.SheetEffect{Kind: home.SheetPrivate},
			keys:   []tea.Msg{press('s')},
			want:   nil,
		},
		{
			name:   "confirmed delete on private sheet",
			effect: home.SheetEffect{Kind: home.SheetPrivate},
			keys:   []tea.Msg{press('d'), press('y')},
			want:   home.SheetDelete{Kind: home.SheetPrivate},
		},
		{
			name:   "declined delete",
			effect: home.SheetEffect{Kind: home.SheetCurrent},
			keys:   []tea.Msg{press('d'), press('n')},
			want:   nil,
		},
		{
			name:   "delete archived session",
			effect: home.SheetEffect{Kind: home.SheetArchived, Session: archived},
			keys:   []tea.Msg{press('d'), tea.KeyPressMsg{Code: tea.KeyEnter}},
			want:   home.SheetDelete{Kind: home.SheetArchived, Session: archived},
		},
		{
			name:   "open archived session",
			effect: home.SheetEffect{Kind: home.SheetArchived, Session: archived},
			keys:   []tea.Msg{press('o')},
			want:   home.SelectArchived{Session: *archived},
		},
		{
			name:   "share archived session",
			effect: home.SheetEffect{Kind: home.SheetArchived, Session: archived},
			keys:   []tea.Msg{press('x')},
			want:   home.ShareArchived{Session: *archived},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Show(tt.effect)

			var got []home.Intent
			for _, k := range tt.keys {
				var cmd tea.Cmd
				s, cmd = s.Update(k)
				got = append(got, intents(cmd)...)
			}

			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("expected no intents, got %v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected one intent, got %v", got)
			}
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, got[0])
			}
			if s.IsVisible() {
				t.Error("sheet should close after an action")
			}
		})
	}
}

func TestSheet_EscapeFromConfirmReturnsToOptions(t *testing.T) {
	s := New()
	s.Show(home.SheetEffect{Kind: home.SheetCurrent})

	s, _ = s.Update(press('d'))
	if s.Step() != StepDeleteConfirm {
		t.Fatalf("expected confirm step, got %v", s.Step())
	}

	s, cmd := s.Update(escape)
	if cmd != nil {
		t.Error("esc from confirm should not close")
	}
	if s.Step() != StepOptions || !s.IsVisible() {
		t.Error("expected options step on a visible sheet")
	}
}
