package bridge

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
)

// Sender delivers messages into a running Bubble Tea program.
// *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// HomeOutputs is the output side of the home screen controller.
type HomeOutputs interface {
	TabsChanges() <-chan home.TabsChange
	SessionsChanges() <-chan home.SessionsChange
	Effects() <-chan home.Effect
	Errors() <-chan error
}

// TUIBridge subscribes to the Hub brokers and the home controller outputs
// and forwards them to the program as messages.
type TUIBridge struct { //nolint:govet // fieldalignment: preserving logical field order
	hub     *pubsub.Hub
	program Sender
	home    HomeOutputs

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// TUIBridgeOption configures the TUIBridge.
type TUIBridgeOption func(*TUIBridge)

// WithHome forwards the controller's output channels as well.
func WithHome(out HomeOutputs) TUIBridgeOption {
	return func(b *TUIBridge) {
		b.home = out
	}
}

// NewTUIBridge creates a new TUI bridge.
func NewTUIBridge(hub *pubsub.Hub, program Sender, opts ...TUIBridgeOption) *TUIBridge {
	b := &TUIBridge{
		hub:     hub,
		program: program,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Start begins forwarding events to the TUI.
// Call Stop() to gracefully shut down.
func (b *TUIBridge) Start(ctx context.Context) {
	b.ctx, b.cancel = context.WithCancel(ctx)

	if b.hub != nil {
		b.wg.Add(3)
		go b.subscribeTabs()
		go b.subscribeBundles()
		go b.subscribeAnalytics()
	}

	if b.home != nil {
		b.wg.Add(4)
		go forward(b, b.home.TabsChanges(), func(c home.TabsChange) tea.Msg {
			return TabsChangedMsg{Change: c}
		})
		go forward(b, b.home.SessionsChanges(), func(c home.SessionsChange) tea.Msg {
			return SessionsChangedMsg{Change: c}
		})
		go forward(b, b.home.Effects(), func(e home.Effect) tea.Msg {
			return EffectMsg{Effect: e}
		})
		go forward(b, b.home.Errors(), func(err error) tea.Msg {
			return ErrorMsg{Source: "home", Error: err}
		})
	}

	debug.Event("bridge", "start", "TUI bridge started")
}

// Stop gracefully shuts down the bridge. Safe to call more than once.
func (b *TUIBridge) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.wg.Wait()
	debug.Event("bridge", "stop", "TUI bridge stopped")
}

func (b *TUIBridge) subscribeTabs() {
	defer b.wg.Done()

	sub := b.hub.Tabs.Subscribe(b.ctx)
	defer sub.Unsubscribe()

	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			b.program.Send(TabEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeBundles() {
	defer b.wg.Done()

	sub := b.hub.Bundles.Subscribe(b.ctx)
	defer sub.Unsubscribe()

	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			b.program.Send(BundleEventMsg{Event: event})
		}
	}
}

func (b *TUIBridge) subscribeAnalytics() {
	defer b.wg.Done()

	sub := b.hub.Analytics.Subscribe(b.ctx)
	defer sub.Unsubscribe()

	for {
		select {
		case <-b.ctx.Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			b.program.Send(AnalyticsEventMsg{Event: event})
		}
	}
}

// forward relays ch until it closes or the bridge stops.
func forward[T any](b *TUIBridge, ch <-chan T, wrap func(T) tea.Msg) {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case v, ok := <-ch:
			if !ok {
				return
			}
			b.program.Send(wrap(v))
		}
	}
}
