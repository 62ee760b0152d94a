package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/guilhermegouw/tabhome/internal/events"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

func TestTabEventMsg(t *testing.T) {
	t.Run("wraps tab event correctly", func(t *testing.T) {
		event := pubsub.Event[events.TabEvent]{
			Type:      pubsub.EventCreated,
			Payload:   events.NewTabAddedEvent("tab-1", true),
			Timestamp: time.Now(),
		}

		msg := TabEventMsg{Event: event}

		if msg.Event.Type != pubsub.EventCreated {
			t.Errorf("expected Type EventCreated, got %q", msg.Event.Type)
		}
		if msg.Event.Payload.Type != events.TabEventAdded {
			t.Errorf("expected added, got %q", msg.Event.Payload.Type)
		}
		if !msg.Event.Payload.Private {
			t.Error("expected private tab")
		}
	})
}

func TestBundleEventMsg(t *testing.T) {
	t.Run("wraps bundle event correctly", func(t *testing.T) {
		event := pubsub.Event[events.BundleEvent]{
			Type:      pubsub.EventUpdated,
			Payload:   events.NewBundleArchivedEvent("b-1", 3),
			Timestamp: time.Now(),
		}

		msg := BundleEventMsg{Event: event}

		if msg.Event.Payload.BundleID != "b-1" {
			t.Errorf("expected BundleID 'b-1', got %q", msg.Event.Payload.BundleID)
		}
		if msg.Event.Payload.TabCount != 3 {
			t.Errorf("expected 3 tabs, got %d", msg.Event.Payload.TabCount)
		}
	})
}

func TestEffectMsg(t *testing.T) {
	msg := EffectMsg{Effect: home.NoticeEffect{Message: "hello"}}

	notice, ok := msg.Effect.(home.NoticeEffect)
	if !ok {
		t.Fatalf("expected NoticeEffect, got %T", msg.Effect)
	}
	if notice.Message != "hello" {
		t.Errorf("expected message 'hello', got %q", notice.Message)
	}
}

func TestErrorMsg(t *testing.T) {
	t.Run("creates error message", func(t *testing.T) {
		err := errors.New("test error")
		msg := ErrorMsg{
			Source: "home",
			Error:  err,
		}

		if msg.Source != "home" {
			t.Errorf("expected Source 'home', got %q", msg.Source)
		}
		if !errors.Is(msg.Error, err) {
			t.Errorf("expected Error %v, got %v", err, msg.Error)
		}
	})
}
