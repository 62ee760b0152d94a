package home

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/debug"
)

// outputBuffer is the capacity of each controller output channel.
const outputBuffer = 16

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("home controller already started")

// ControllerConfig configures a Controller. BundleLimit defaults to
// bundle.DefaultLimit.
type ControllerConfig struct {
	RouterConfig
	BundleLimit int
}

// Controller runs the home screen between Start and Stop. Intents are
// dispatched one at a time in arrival order; storage work runs in the
// background and is cancelled by Stop.
type Controller struct {
	router  *Router
	manager SessionManager
	storage SessionStorage
	limit   int

	intents  chan Intent
	tabs     chan TabsChange
	sessions chan SessionsChange
	effects  chan Effect
	errs     chan error

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	// tabsMu and sessionsMu are held from reading state until the
	// projection is sent, so the last projection sent is never stale.
	tabsMu     sync.Mutex
	sessionsMu sync.Mutex

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewController creates a controller. The router it builds runs background
// work on the controller.
func NewController(cfg ControllerConfig) *Controller {
	c := &Controller{
		manager:  cfg.Manager,
		storage:  cfg.Storage,
		limit:    cfg.BundleLimit,
		intents:  make(chan Intent),
		tabs:     make(chan TabsChange, outputBuffer),
		sessions: make(chan SessionsChange, outputBuffer),
		effects:  make(chan Effect, outputBuffer),
		errs:     make(chan error, outputBuffer),
	}
	if c.limit <= 0 {
		c.limit = bundle.DefaultLimit
	}

	rc := cfg.RouterConfig
	rc.Runner = c
	c.router = NewRouter(rc)
	return c
}

// Router returns the controller's router.
func (c *Controller) Router() *Router { return c.router }

// Intents is where the UI sends intents. Use Send after Stop may have run.
func (c *Controller) Intents() chan<- Intent { return c.intents }

// TabsChanges delivers a projection after every tab or mode change.
func (c *Controller) TabsChanges() <-chan TabsChange { return c.tabs }

// SessionsChanges delivers a projection after every bundle change.
func (c *Controller) SessionsChanges() <-chan SessionsChange { return c.sessions }

// Effects delivers UI effects.
func (c *Controller) Effects() <-chan Effect { return c.effects }

// Errors delivers non-fatal failures.
func (c *Controller) Errors() <-chan error { return c.errs }

// Start subscribes to the tab manager and bundle storage, emits the initial
// projections and begins dispatching. Output channels are closed by Stop.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.group, c.ctx = errgroup.WithContext(c.ctx)

	tabSub := c.manager.Subscribe(c.ctx)
	bundleSub := c.storage.Subscribe(c.ctx)

	c.emitTabs()
	c.group.Go(func() error {
		c.refreshSessions()
		return nil
	})

	c.group.Go(func() error {
		defer tabSub.Unsubscribe()
		for {
			select {
			case <-c.ctx.Done():
				return nil
			case _, ok := <-tabSub.Events():
				if !ok {
					return nil
				}
				c.emitTabs()
			}
		}
	})

	c.group.Go(func() error {
		defer bundleSub.Unsubscribe()
		for {
			select {
			case <-c.ctx.Done():
				return nil
			case _, ok := <-bundleSub.Events():
				if !ok {
					return nil
				}
				c.refreshSessions()
			}
		}
	})

	c.group.Go(func() error {
		for {
			select {
			case <-c.ctx.Done():
				return nil
			case intent := <-c.intents:
				c.dispatch(intent)
			}
		}
	})

	debug.Event("home", "started", fmt.Sprintf("bundle_limit=%d", c.limit))
	return nil
}

// Send queues intent for dispatch. It reports false once the controller
// has stopped or was never started.
func (c *Controller) Send(intent Intent) bool {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	if ctx == nil {
		return false
	}

	select {
	case c.intents <- intent:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop cancels background work, waits for it and releases the
// subscriptions. Nothing is emitted afterwards. Safe to call more than once.
func (c *Controller) Stop() {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()
	if !started {
		return
	}

	c.stopOnce.Do(func() {
		c.cancel()
		if err := c.group.Wait(); err != nil {
			debug.Error("home", err, "stopping controller")
		}
		close(c.tabs)
		close(c.sessions)
		close(c.effects)
		close(c.errs)
		debug.Event("home", "stopped", "")
	})
}

// Go implements Runner on the controller's errgroup.
func (c *Controller) Go(task string, fn func(ctx context.Context) (Effect, error)) {
	c.group.Go(func() error {
		effect, err := fn(c.ctx)
		if c.ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.fail(fmt.Errorf("%s: %w", task, err))
			return nil
		}
		if effect != nil {
			c.emitEffect(effect)
		}
		return nil
	})
}

func (c *Controller) dispatch(intent Intent) {
	effect, err := c.router.Dispatch(c.ctx, intent)
	if err != nil {
		c.fail(err)
		return
	}
	if effect == nil {
		return
	}
	if _, ok := effect.(ModeEffect); ok {
		c.emitTabs()
	}
	c.emitEffect(effect)
}

func (c *Controller) emitTabs() {
	c.tabsMu.Lock()
	defer c.tabsMu.Unlock()

	sessions := c.manager.Sessions()
	private := c.router.Mode().Private()
	send(c.ctx, c.tabs, TabsChange{
		Tabs:                   Project(sessions, c.manager.SelectedID(), private),
		Private:                private,
		ShowPrivateDescription: PrivateDescriptionVisible(sessions, private),
	})
}

func (c *Controller) refreshSessions() {
	c.sessionsMu.Lock()
	defer c.sessionsMu.Unlock()

	bundles, err := c.storage.Bundles(c.ctx, c.limit)
	if err != nil {
		if c.ctx.Err() == nil {
			c.fail(fmt.Errorf("loading bundles: %w", err))
		}
		return
	}
	current, err := c.storage.Current(c.ctx)
	if err != nil {
		if c.ctx.Err() == nil {
			c.fail(fmt.Errorf("loading current bundle: %w", err))
		}
		return
	}

	currentID := ""
	if current != nil {
		currentID = current.ID
	}
	send(c.ctx, c.sessions, SessionsChange{Sessions: ProjectArchived(bundles, currentID)})
}

func (c *Controller) emitEffect(effect Effect) {
	send(c.ctx, c.effects, effect)
}

func (c *Controller) fail(err error) {
	debug.Error("home", err, "")
	send(c.ctx, c.errs, err)
}

// send delivers v unless ctx is done. The ctx check comes first so nothing
// is delivered once teardown has begun, even when ch has room.
func send[T any](ctx context.Context, ch chan<- T, v T) {
	if ctx.Err() != nil {
		return
	}
	select {
	case ch <- v:
	case <-ctx.Done():
	}
}
