// Package app owns the page registry, the overlays and the action
// dispatch loop. It is independent of the terminal host: the host feeds it
// key, mouse and size events, calls Step once per frame and draws it into a
// frame.
package app

import (
	"context"
	"fmt"
	"slices"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/log"
	"pagetui/internal/tui/components"
	"pagetui/internal/tui/views"
	"pagetui/internal/watch"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// navHeight is the height of the bordered navigation bar.
const navHeight = 3

// overlay is a component drawn above the page that can claim input.
type overlay interface {
	component.Component
	Active() bool
}

// Option configures an App.
type Option func(*App)

// WithPages replaces the default page registry.
func WithPages(pages map[types.Mode]component.Component) Option {
	return func(a *App) { a.pages = pages }
}

// WithViewOptions sets the options the default pages are built with.
func WithViewOptions(opts views.Options) Option {
	return func(a *App) { a.viewOpts = opts }
}

// WithClock replaces the clock used by the toast and log overlays.
func WithClock(now components.Clock) Option {
	return func(a *App) { a.now = now }
}

// App is the root of the draw and input tree.
type App struct {
	cfg      *config.AppConfiguration
	queue    *action.Queue
	pages    map[types.Mode]component.Component
	viewOpts views.Options
	now      components.Clock
	watcher  *watch.Watcher

	notFound *views.NotFound
	nav      *components.Navigation
	menu     *components.Menu
	help     *components.Help
	logView  *components.LogView
	popup    *components.Popup
	quit     *components.Quit
	toast    *components.Toast

	ctx     component.Ctx
	area    layout.Rect
	exit    bool
	suspend bool

	runCtx context.Context
	cancel context.CancelFunc
}

// New builds the application, registers the queue and configuration with
// every page and overlay, and opens on the configured start mode.
// Configuration errors are shown as toasts rather than returned.
func New(cfg *config.AppConfiguration, opts ...Option) *App {
	a := &App{cfg: cfg, queue: action.NewQueue()}
	for _, opt := range opts {
		opt(a)
	}
	a.runCtx, a.cancel = context.WithCancel(context.Background())

	if a.pages == nil {
		a.viewOpts.Context = a.runCtx
		if a.now != nil && a.viewOpts.Clock == nil {
			a.viewOpts.Clock = a.now
		}
		if a.viewOpts.Watcher == nil {
			a.startWatcher()
		}
		a.pages = views.Default(a.viewOpts)
	}

	a.notFound = views.NewNotFound()
	a.nav = components.NewNavigation()
	a.menu = components.NewMenu()
	a.help = components.NewHelp()
	a.logView = components.NewLogView(a.now)
	a.popup = components.NewPopup()
	a.quit = components.NewQuit()
	a.toast = components.NewToast(a.now)

	mode, err := cfg.StartMode()
	if err != nil {
		log.LogWithFields(log.F("start_mode", cfg.App.StartMode)).Warn("Unknown start mode, using Login")
	}
	a.ctx = component.Ctx{Config: cfg, Mode: mode}

	a.RegisterActionHandler(a.queue)
	a.RegisterConfigHandler()
	return a
}

func (a *App) startWatcher() {
	w, err := watch.New(a.queue)
	if err != nil {
		log.LogError(err, "Directory watcher unavailable")
		return
	}
	if err := w.Start(); err != nil {
		log.LogError(err, "Directory watcher unavailable")
		return
	}
	a.watcher = w
	a.viewOpts.Watcher = w
}

// components returns every page, the fallback and the overlays in draw
// order. Pages come sorted by mode.
func (a *App) components() []component.Component {
	all := make([]component.Component, 0, len(a.pages)+8)
	for _, m := range a.sortedModes() {
		all = append(all, a.pages[m])
	}
	all = append(all, a.notFound, a.nav)
	for _, o := range a.overlays() {
		all = append(all, o)
	}
	return append(all, a.toast)
}

// overlays returns the modal overlays bottom to top.
func (a *App) overlays() []overlay {
	return []overlay{a.menu, a.help, a.logView, a.popup, a.quit}
}

// top returns the topmost active modal overlay, or nil.
func (a *App) top() overlay {
	ovs := a.overlays()
	for i := len(ovs) - 1; i >= 0; i-- {
		if ovs[i].Active() {
			return ovs[i]
		}
	}
	return nil
}

// RegisterActionHandler hands tx to every page and overlay.
func (a *App) RegisterActionHandler(tx action.Sender) {
	component.Group(a.components()).RegisterActionHandler(tx)
}

// RegisterConfigHandler configures every page and overlay. Failures are
// logged and queued as Error toasts.
func (a *App) RegisterConfigHandler() {
	for _, c := range a.components() {
		if err := c.RegisterConfigHandler(a.cfg); err != nil {
			a.fail(err)
		}
	}
}

func (a *App) fail(err error) {
	log.LogError(err, "Component error")
	a.queue.Send(action.NewError(err.Error()))
}

// Queue is the sender the host uses to inject Tick and Render actions.
func (a *App) Queue() *action.Queue { return a.queue }

// Mode returns the current page.
func (a *App) Mode() types.Mode { return a.ctx.Mode }

// Auth reports whether a user is logged in.
func (a *App) Auth() bool { return a.ctx.Auth }

// Username returns the logged in user.
func (a *App) Username() string { return a.ctx.Username }

// Page returns the component drawn for the current mode.
func (a *App) Page() component.Component {
	if p, ok := a.pages[a.ctx.Mode]; ok {
		return p
	}
	return a.notFound
}

// Title is the terminal window title.
func (a *App) Title() string {
	return fmt.Sprintf("%s - %s", config.AppName, a.ctx.Mode)
}

// TakeSuspend reports and clears a pending Suspend request.
func (a *App) TakeSuspend() bool {
	s := a.suspend
	a.suspend = false
	return s
}

// Resize queues a layout pass for a w by h screen.
func (a *App) Resize(w, h int) {
	a.queue.Send(action.NewResize(w, h))
}

// layout splits the screen into the navigation row, shown only when
// logged in, and the page area.
func (a *App) layout() {
	body := a.area
	nav := layout.Rect{}
	if a.ctx.Auth {
		rows := layout.VerticalLayout(layout.Length(navHeight), layout.Fill(1)).Split(a.area)
		nav, body = rows[0], rows[1]
	}
	a.nav.RegisterLayoutHandler(nav)
	for _, p := range a.pages {
		p.RegisterLayoutHandler(body)
	}
	a.notFound.RegisterLayoutHandler(body)
	for _, o := range a.overlays() {
		o.RegisterLayoutHandler(a.area)
	}
	a.toast.RegisterLayoutHandler(a.area)
}

// HandleKey routes key to the topmost active overlay, else to the current
// page, then to the toast, then to the global keymap unless the page is
// capturing text.
func (a *App) HandleKey(key tea.KeyMsg) {
	a.queue.Send(a.routeKey(key))
}

func (a *App) routeKey(key tea.KeyMsg) action.Action {
	if o := a.top(); o != nil {
		return o.HandleKeyEvents(key)
	}
	page := a.Page()
	act := page.HandleKeyEvents(key)
	if act.IsNone() {
		act = a.toast.HandleKeyEvents(key)
	}
	if act.IsNone() && !page.CurrentMode().CapturesText() {
		act = a.cfg.Keymap(types.Global).Lookup(key)
	}
	return act
}

// HandleMouse queues the raw event and offers it to the topmost overlay,
// or to the navigation bar and the current page.
func (a *App) HandleMouse(m tea.MouseMsg) {
	a.queue.Send(action.NewMouse(m))
	if o := a.top(); o != nil {
		a.queue.Send(o.HandleMouseEvents(m))
		return
	}
	if a.ctx.Auth {
		a.queue.Send(a.nav.HandleMouseEvents(m))
	}
	a.queue.Send(a.Page().HandleMouseEvents(m))
}

// Step applies every queued action in order. Follow-up actions are queued
// for the next step. It reports whether the application should exit.
func (a *App) Step() bool {
	for _, act := range a.queue.Drain() {
		a.dispatch(act)
	}
	return a.exit
}

// modal reports the actions that go only to the topmost active overlay.
func modal(k action.Kind) bool {
	switch k {
	case action.Back, action.Forward, action.SelectOption, action.ClosePopup,
		action.ScrollUp, action.ScrollDown:
		return true
	}
	return false
}

// broadcast reports the actions every page sees, not only the current one.
func broadcast(k action.Kind) bool {
	switch k {
	case action.LoggedIn, action.LoggedOut, action.ChatReceived, action.Refresh, action.Quit:
		return true
	}
	return false
}

func (a *App) dispatch(act action.Action) {
	switch act.Kind {
	case action.ChangeMode:
		if act.Mode != a.ctx.Mode {
			log.LogWithFields(log.F("from", a.ctx.Mode), log.F("to", act.Mode)).Debug("Changing mode")
		}
		a.ctx.Mode = act.Mode
	case action.LoggedIn:
		a.ctx.Auth = true
		a.ctx.Username = act.Text
		a.layout()
	case action.LoggedOut:
		a.ctx.Auth = false
		a.ctx.Username = ""
		a.layout()
	case action.Resize:
		a.area = layout.NewRect(0, 0, act.Width, act.Height)
		a.layout()
	case action.Error:
		log.LogWithFields(log.F("error", act.Text)).Error("Error action")
	case action.Quit:
		a.exit = true
	case action.Suspend:
		a.suspend = true
	}

	for _, c := range a.targets(act) {
		follow, err := c.Update(act, &a.ctx)
		if err != nil {
			a.fail(err)
			continue
		}
		a.queue.Send(follow)
	}
}

// targets lists the components that see act.
func (a *App) targets(act action.Action) []component.Component {
	if o := a.top(); o != nil && modal(act.Kind) {
		return []component.Component{o}
	}
	out := []component.Component{a.nav}
	for _, o := range a.overlays() {
		out = append(out, o)
	}
	out = append(out, a.toast)
	if broadcast(act.Kind) {
		for _, m := range a.sortedModes() {
			out = append(out, a.pages[m])
		}
		return out
	}
	if p, ok := a.pages[a.ctx.Mode]; ok {
		out = append(out, p)
	}
	return out
}

func (a *App) sortedModes() []types.Mode {
	modes := make([]types.Mode, 0, len(a.pages))
	for m := range a.pages {
		modes = append(modes, m)
	}
	slices.Sort(modes)
	return modes
}

// Draw renders the navigation bar when logged in, the current page and
// the overlays so later ones cover earlier ones.
func (a *App) Draw(f *frame.Frame) {
	if a.ctx.Auth {
		a.nav.Draw(f)
	}
	a.Page().Draw(f)
	for _, o := range a.overlays() {
		o.Draw(f)
	}
	a.toast.Draw(f)
}

// Close cancels background work owned by the application.
func (a *App) Close() {
	a.cancel()
	if a.watcher != nil {
		a.watcher.Stop()
	}
}
