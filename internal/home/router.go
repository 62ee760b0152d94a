package home

import (
	"context"
	"fmt"

	"github.com/guilhermegouw/tabhome/internal/analytics"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/debug"
)

const (
	analyticsSource = "home"

	shareUnavailable = "Sharing is not available yet"
	helpUnavailable  = "Help is not available yet"
)

// RouterConfig holds a router's collaborators. Tracker defaults to
// analytics.Nop, Mode to normal browsing and Runner to running storage work
// inline on the dispatching goroutine.
type RouterConfig struct {
	Manager   SessionManager
	Storage   SessionStorage
	Navigator Navigator
	Tracker   Tracker
	Mode      *BrowsingMode
	Runner    Runner
}

// Router maps each intent to its side effect. It keeps no state of its own.
type Router struct {
	manager   SessionManager
	storage   SessionStorage
	navigator Navigator
	tracker   Tracker
	mode      *BrowsingMode
	runner    Runner
}

// NewRouter creates a router.
func NewRouter(cfg RouterConfig) *Router {
	r := &Router{
		manager:   cfg.Manager,
		storage:   cfg.Storage,
		navigator: cfg.Navigator,
		tracker:   cfg.Tracker,
		mode:      cfg.Mode,
		runner:    cfg.Runner,
	}
	if r.tracker == nil {
		r.tracker = analytics.Nop{}
	}
	if r.mode == nil {
		r.mode = NewBrowsingMode(false)
	}
	if r.runner == nil {
		r.runner = syncRunner{}
	}
	return r
}

// syncRunner runs work before Go returns. With no UI behind it, errors
// go to the debug log and effects are dropped.
type syncRunner struct{}

func (syncRunner) Go(task string, fn func(ctx context.Context) (Effect, error)) {
	if _, err := fn(context.Background()); err != nil {
		debug.Error("home", err, task)
	}
}

// Mode returns the browsing mode the router acts on.
func (r *Router) Mode() *BrowsingMode {
	return r.mode
}

// Dispatch applies intent. The returned effect is nil when the intent's
// only outcome is external. Storage work is handed to the runner.
func (r *Router) Dispatch(ctx context.Context, intent Intent) (Effect, error) {
	switch in := intent.(type) {
	case Archive, SheetArchive:
		r.archive()
		return nil, nil

	case OpenMenu:
		private := r.mode.Private()
		return SheetEffect{
			Kind:   SheetFor(private),
			Titles: Titles(r.manager.Sessions(), private),
		}, nil

	case SelectTab:
		return nil, r.selectTab(in.ID)

	case CloseTab:
		if s, ok := r.manager.FindByID(in.ID); ok {
			r.manager.Remove(s)
		}
		return nil, nil

	case CloseAllTabs:
		r.manager.RemoveAllOfType(in.Private)
		return nil, nil

	case SelectArchived:
		r.restore(in.Session)
		return nil, nil

	case DeleteArchived:
		r.remove(in.Session.Bundle)
		return nil, nil

	case ShareArchived:
		return NoticeEffect{Message: shareUnavailable}, nil

	case ToggleMode:
		return ModeEffect{Private: r.mode.Toggle()}, nil

	case SearchTapped:
		r.tracker.Track(ctx, analytics.Event{Name: analytics.SearchBarTapped, Source: analyticsSource})
		r.navigator.Navigate(Search())
		return nil, nil

	case HomeMenuItem:
		switch in.Item {
		case MenuSettings:
			r.navigator.Navigate(Settings())
		case MenuLibrary:
			r.navigator.Navigate(Library())
		default:
			return NoticeEffect{Message: helpUnavailable}, nil
		}
		return nil, nil

	case ArchivedMenuTapped:
		s := in.Session
		return SheetEffect{Kind: SheetArchived, Titles: s.URLs, Session: &s}, nil

	case SheetDelete:
		return nil, r.sheetDelete(in)

	default:
		return nil, fmt.Errorf("unhandled intent %T", intent)
	}
}

func (r *Router) selectTab(id string) error {
	s, ok := r.manager.FindByID(id)
	if !ok {
		return &PreconditionError{Op: "select tab", ID: id, Err: ErrSessionNotFound}
	}
	if err := r.manager.Select(s); err != nil {
		return &PreconditionError{Op: "select tab", ID: id, Err: fmt.Errorf("%w: %w", ErrSessionNotFound, err)}
	}
	r.navigator.Navigate(Browser(id))
	return nil
}

func (r *Router) archive() {
	r.runner.Go("archive tabs", func(ctx context.Context) (Effect, error) {
		if err := r.storage.Archive(ctx, r.manager); err != nil {
			return nil, err
		}
		r.tracker.Track(ctx, analytics.Event{Name: analytics.TabsArchived, Source: analyticsSource})
		return nil, nil
	})
}

// restore swaps the live tabs for the bundle's in one storage call, so a
// bundle that cannot be restored leaves the live tabs as they were.
func (r *Router) restore(s ArchivedSession) {
	r.runner.Go("restore bundle", func(ctx context.Context) (Effect, error) {
		if s.Bundle == nil {
			return nil, bundle.ErrNotFound
		}
		if err := r.storage.Switch(ctx, r.manager, s.Bundle); err != nil {
			if ctx.Err() != nil {
				return nil, nil
			}
			return nil, err
		}
		r.tracker.Track(ctx, analytics.Event{Name: analytics.BundleRestored, Source: analyticsSource})
		return ScrollTopEffect{}, nil
	})
}

func (r *Router) remove(b *bundle.Bundle) {
	r.runner.Go("remove bundle", func(ctx context.Context) (Effect, error) {
		if err := r.storage.Remove(ctx, b); err != nil {
			return nil, err
		}
		r.tracker.Track(ctx, analytics.Event{Name: analytics.BundleDeleted, Source: analyticsSource})
		return nil, nil
	})
}

func (r *Router) sheetDelete(in SheetDelete) error {
	switch in.Kind {
	case SheetArchived:
		if in.Session == nil {
			return &PreconditionError{Op: "delete archived session", Err: bundle.ErrNotFound}
		}
		r.remove(in.Session.Bundle)
	case SheetCurrent:
		r.manager.RemoveAllOfType(false)
		r.runner.Go("remove current bundle", func(ctx context.Context) (Effect, error) {
			cur, err := r.storage.Current(ctx)
			if err != nil || cur == nil {
				return nil, err
			}
			return nil, r.storage.Remove(ctx, cur)
		})
	case SheetPrivate:
		r.manager.RemoveAllOfType(true)
	}
	return nil
}
