// Package component defines the contract every page and widget
// implements, and the context handed to them on update.
package component

import (
	"pagetui/internal/action"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Ctx is the application state visible to Update.
type Ctx struct {
	Config   *config.AppConfiguration
	Mode     types.Mode
	Auth     bool
	Username string
}

// Component is a unit of UI. The app and composite pages drive every
// component through the same sequence: RegisterActionHandler and
// RegisterConfigHandler once, RegisterLayoutHandler on every resize, then
// key and mouse handling, Update and Draw each frame.
type Component interface {
	// RegisterActionHandler stores the sender used for asynchronous work.
	RegisterActionHandler(tx action.Sender)
	// RegisterLayoutHandler caches the rects the component draws into.
	RegisterLayoutHandler(area layout.Rect)
	// RegisterConfigHandler injects configuration and loads any content
	// that depends on it.
	RegisterConfigHandler(cfg *config.AppConfiguration) error
	HandleKeyEvents(key tea.KeyMsg) action.Action
	HandleMouseEvents(mouse tea.MouseMsg) action.Action
	// Update applies a, returning at most one follow-up action.
	Update(a action.Action, ctx *Ctx) (action.Action, error)
	// Draw renders into f at the cached rects without mutating state.
	Draw(f *frame.Frame)
	CurrentMode() types.InputMode
}

// Base supplies no-op defaults. Components embed it and define Draw.
type Base struct {
	Tx     action.Sender
	Config *config.AppConfiguration
	Area   layout.Rect
	Mode   types.InputMode
}

func (b *Base) RegisterActionHandler(tx action.Sender) { b.Tx = tx }

func (b *Base) RegisterLayoutHandler(area layout.Rect) { b.Area = area }

func (b *Base) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	b.Config = cfg
	return nil
}

func (b *Base) HandleKeyEvents(tea.KeyMsg) action.Action { return action.Action{} }

func (b *Base) HandleMouseEvents(tea.MouseMsg) action.Action { return action.Action{} }

func (b *Base) Update(action.Action, *Ctx) (action.Action, error) { return action.Action{}, nil }

func (b *Base) CurrentMode() types.InputMode { return b.Mode }

// Send forwards a to the registered sender, if any.
func (b *Base) Send(a action.Action) {
	if b.Tx != nil {
		b.Tx.Send(a)
	}
}

// Palette returns the configured theme colors.
func (b *Base) Palette() config.Palette {
	return b.Config.Palette()
}

// Keymap returns the configured bindings for mode, or nil before
// configuration.
func (b *Base) Keymap(mode types.Mode) action.Keymap {
	if b.Config == nil {
		return nil
	}
	return b.Config.Keymap(mode)
}

// Group forwards lifecycle calls to children in order. Composite pages
// use it for the calls they do not special-case.
type Group []Component

func (g Group) RegisterActionHandler(tx action.Sender) {
	for _, c := range g {
		c.RegisterActionHandler(tx)
	}
}

// RegisterConfigHandler configures every child and returns the first
// error after trying all of them.
func (g Group) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	var first error
	for _, c := range g {
		if err := c.RegisterConfigHandler(cfg); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// IsClick reports a left button press.
func IsClick(m tea.MouseMsg) bool {
	return m.Button == tea.MouseButtonLeft && m.Action == tea.MouseActionPress
}
