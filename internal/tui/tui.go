// Package tui provides the terminal user interface for tabhome.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/guilhermegouw/tabhome/internal/bridge"
	"github.com/guilhermegouw/tabhome/internal/bundle"
	"github.com/guilhermegouw/tabhome/internal/config"
	"github.com/guilhermegouw/tabhome/internal/debug"
	"github.com/guilhermegouw/tabhome/internal/home"
	"github.com/guilhermegouw/tabhome/internal/pubsub"
	"github.com/guilhermegouw/tabhome/internal/tabs"
	"github.com/guilhermegouw/tabhome/internal/tui/keys"
	"github.com/guilhermegouw/tabhome/internal/tui/page"
	"github.com/guilhermegouw/tabhome/internal/tui/page/browser"
	"github.com/guilhermegouw/tabhome/internal/tui/page/homescreen"
	"github.com/guilhermegouw/tabhome/internal/tui/page/library"
	"github.com/guilhermegouw/tabhome/internal/tui/page/search"
	"github.com/guilhermegouw/tabhome/internal/tui/page/settings"
	"github.com/guilhermegouw/tabhome/internal/tui/styles"
	"github.com/guilhermegouw/tabhome/internal/tui/util"
)

// Deps are the services the TUI drives.
type Deps struct {
	Config     *config.Config
	ConfigPath string
	Hub        *pubsub.Hub
	Manager    *tabs.Manager
	Storage    *bundle.Storage
	Controller *home.Controller
	Navigator  *Navigator
}

// Model is the main TUI model.
type Model struct {
	keys    keys.KeyMap
	enqueue func(home.Intent) bool

	homePage     *homescreen.Model
	browserPage  *browser.Model
	searchPage   *search.Model
	settingsPage *settings.Model
	libraryPage  *library.Model

	currentPage page.ID
	status      util.InfoMsg
	width       int
	height      int
	ready       bool
}

// New creates a new TUI model. enqueue hands intents to the controller and
// must not block.
func New(deps Deps, enqueue func(home.Intent) bool) *Model {
	km := keys.DefaultKeyMap()
	limit := deps.Config.BundleLimit()

	return &Model{
		keys:         km,
		enqueue:      enqueue,
		homePage:     homescreen.New(km),
		browserPage:  browser.New(km, deps.Manager),
		searchPage:   search.New(deps.Manager, deps.Storage, deps.Controller.Router().Mode(), limit),
		settingsPage: settings.New(deps.Config, deps.ConfigPath),
		libraryPage:  library.New(deps.Storage, limit),
		currentPage:  page.Home,
	}
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return m.homePage.Init()
}

// CurrentPage returns the visible page.
func (m *Model) CurrentPage() page.ID {
	return m.currentPage
}

// Update handles messages.
//
//nolint:gocyclo // TUI update handler requires handling many message types
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		debug.Event("tui", "WindowSize", fmt.Sprintf("width=%d height=%d", msg.Width, msg.Height))
		m.handleWindowSize(msg)
		return m, nil
	case tea.KeyMsg:
		debug.Event("tui", "KeyMsg", fmt.Sprintf("key=%q", msg.String()))
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.String() == "q" && m.canQuit() {
			return m, tea.Quit
		}
		m.status = util.InfoMsg{}
	case util.InfoMsg:
		m.status = msg
		return m, nil
	case util.IntentMsg:
		debug.Event("tui", "Intent", fmt.Sprintf("%T", msg.Intent))
		if !m.enqueue(msg.Intent) {
			m.status = util.InfoMsg{Type: util.InfoTypeError, Msg: "Busy, try again"}
		}
		return m, nil
	case page.ChangeMsg:
		debug.Event("tui", "PageChange", fmt.Sprintf("page=%s", msg.Page))
		return m, m.changePage(msg)
	case bridge.ErrorMsg:
		debug.Error("tui", msg.Error, msg.Source)
		m.status = util.InfoMsg{Type: util.InfoTypeError, Msg: msg.Error.Error()}
		return m, nil
	case bridge.TabsChangedMsg, bridge.SessionsChangedMsg, bridge.EffectMsg:
		_, cmd := m.homePage.Update(msg)
		return m, cmd
	case bridge.TabEventMsg:
		if m.currentPage != page.Browser {
			return m, nil
		}
	case bridge.BundleEventMsg:
		if m.currentPage != page.Library {
			return m, nil
		}
	case bridge.AnalyticsEventMsg:
		debug.Event("analytics", msg.Event.Payload.Name, msg.Event.Payload.Source)
		return m, nil
	}

	return m, m.routeToPage(msg)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	// Leave a line for the status bar.
	h := max(m.height-1, 1)
	m.homePage.SetSize(m.width, h)
	m.browserPage.SetSize(m.width, h)
	m.searchPage.SetSize(m.width, h)
	m.settingsPage.SetSize(m.width, h)
	m.libraryPage.SetSize(m.width, h)
}

// canQuit reports whether q quits: only where it is not typed into an input.
func (m *Model) canQuit() bool {
	switch m.currentPage {
	case page.Home:
		return !m.homePage.SheetVisible()
	case page.Browser:
		return true
	default:
		return false
	}
}

func (m *Model) changePage(msg page.ChangeMsg) tea.Cmd {
	m.currentPage = msg.Page
	m.status = util.InfoMsg{}

	switch msg.Page {
	case page.Browser:
		m.browserPage.Open(msg.TabID)
	case page.Search:
		return m.searchPage.Activate()
	case page.Library:
		return m.libraryPage.Activate()
	case page.Home, page.Settings:
	}
	return nil
}

func (m *Model) routeToPage(msg tea.Msg) tea.Cmd {
	p := m.page()
	if p == nil {
		return nil
	}
	_, cmd := p.Update(msg)
	return cmd
}

func (m *Model) page() util.Model {
	switch m.currentPage {
	case page.Home:
		return m.homePage
	case page.Browser:
		return m.browserPage
	case page.Search:
		return m.searchPage
	case page.Settings:
		return m.settingsPage
	case page.Library:
		return m.libraryPage
	}
	return nil
}

// View renders the TUI.
func (m *Model) View() tea.View {
	t := styles.CurrentTheme()

	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if !m.ready {
		view.Content = "Loading..."
		return view
	}

	content := "Unknown page"
	if p := m.page(); p != nil {
		content = p.View()
	}

	if m.status.Msg != "" {
		style := t.S().Info
		switch m.status.Type {
		case util.InfoTypeError:
			style = t.S().Error
		case util.InfoTypeSuccess:
			style = t.S().Success
		}
		content = lipgloss.JoinVertical(lipgloss.Left, content, style.Render(" "+m.status.Msg))
	}
	view.Content = content

	switch m.currentPage {
	case page.Search:
		view.Cursor = m.searchPage.Cursor()
	case page.Library:
		view.Cursor = m.libraryPage.Cursor()
	case page.Home, page.Browser, page.Settings:
		// No cursor for these pages
	}

	return view
}

// Run starts the TUI program and the home controller, and tears both down
// when the program exits.
func Run(ctx context.Context, deps Deps) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("tabhome requires an interactive terminal: stdin/stdout must be connected to a TTY")
	}

	if theme := deps.Config.Theme(); !styles.NewManager().SetTheme(theme) {
		debug.Log("tui: unknown theme %q, using default", theme)
	}

	queue := newIntentQueue(deps.Controller)
	model := New(deps, queue.Enqueue)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	deps.Navigator.Attach(p)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tuiBridge := bridge.NewTUIBridge(deps.Hub, p, bridge.WithHome(deps.Controller))
	tuiBridge.Start(ctx)
	defer tuiBridge.Stop()

	if err := deps.Controller.Start(ctx); err != nil {
		return fmt.Errorf("starting home controller: %w", err)
	}
	defer deps.Controller.Stop()

	queue.Start(ctx)
	defer queue.Wait()

	_, err := p.Run()
	cancel()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
