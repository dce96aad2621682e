package views

import (
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/log"
	"pagetui/internal/state"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// sidebarKeys reports the keys that hide the sidebar in Select mode.
func sidebarKeys(key tea.KeyMsg) bool {
	switch key.String() {
	case "esc", "backspace":
		return true
	}
	return false
}

// sidebarLayout splits area into the sidebar and the content.
func sidebarLayout(area layout.Rect, sidebar bool) (layout.Rect, layout.Rect) {
	if !sidebar {
		return layout.Rect{}, area
	}
	cols := layout.Horizontal(layout.Percentage(18), layout.Fill(1)).Split(area)
	return cols[0], cols[1]
}

// Filebrowser is a directory sidebar next to a viewer for the selected
// file.
type Filebrowser struct {
	component.Base
	picker    *components.Filepicker
	content   *components.Filestats
	sidebar   bool
	clipboard func(string) error
}

func NewFilebrowser(opts Options) *Filebrowser {
	opts = opts.withDefaults()
	return &Filebrowser{
		Base:      component.Base{Mode: types.Select},
		picker:    components.NewFilepicker(components.PickerOptions{Watcher: opts.Watcher}),
		content:   components.NewFilestats("", time.Time{}, "", state.NewScrollState(0)),
		sidebar:   true,
		clipboard: opts.Clipboard,
	}
}

func (b *Filebrowser) Picker() *components.Filepicker { return b.picker }

func (b *Filebrowser) Content() *components.Filestats { return b.content }

func (b *Filebrowser) Sidebar() bool { return b.sidebar }

func (b *Filebrowser) RegisterActionHandler(tx action.Sender) {
	b.Tx = tx
	component.Group{b.picker, b.content}.RegisterActionHandler(tx)
}

func (b *Filebrowser) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	b.Config = cfg
	return component.Group{b.picker, b.content}.RegisterConfigHandler(cfg)
}

func (b *Filebrowser) RegisterLayoutHandler(area layout.Rect) {
	b.Area = area
	side, main := sidebarLayout(area, b.sidebar)
	b.picker.RegisterLayoutHandler(side)
	b.content.RegisterLayoutHandler(main)
}

func (b *Filebrowser) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if b.sidebar {
		if a := b.picker.HandleKeyEvents(key); !a.IsNone() {
			return a
		}
	}
	if b.Mode == types.Select && sidebarKeys(key) {
		return action.Of(action.ToggleSidebar)
	}
	return b.Keymap(types.Filebrowser).Lookup(key)
}

func (b *Filebrowser) HandleMouseEvents(m tea.MouseMsg) action.Action {
	if b.sidebar {
		return b.picker.HandleMouseEvents(m)
	}
	return action.Action{}
}

func (b *Filebrowser) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if _, err := b.content.Update(a, ctx); err != nil {
		return action.Action{}, err
	}
	if b.sidebar || a.Kind == action.Refresh {
		if _, err := b.picker.Update(a, ctx); err != nil {
			return action.Action{}, err
		}
	}

	switch a.Kind {
	case action.ToggleSidebar:
		b.sidebar = !b.sidebar
		if b.sidebar {
			b.Mode = types.Select
		} else {
			b.Mode = types.Normal
		}
		b.RegisterLayoutHandler(b.Area)
	case action.SelectOption:
		return action.Action{}, b.open()
	case action.Yank:
		e, ok := b.picker.Selected()
		if !ok {
			break
		}
		if err := b.clipboard(e.Path); err != nil {
			log.LogError(err, "Failed to copy path")
			return action.NewError("Failed to copy path: " + err.Error()), nil
		}
		return action.NewToast("Copied", e.Path), nil
	}
	return action.Action{}, nil
}

// open loads the selected file into a new viewer. Directories are
// skipped.
func (b *Filebrowser) open() error {
	e, ok := b.picker.Selected()
	if !ok || e.IsDir {
		return nil
	}
	_, main := sidebarLayout(b.Area, b.sidebar)
	stats, err := openEntry(e, main.Height)
	if err != nil {
		return err
	}
	stats.RegisterActionHandler(b.Tx)
	if err := stats.RegisterConfigHandler(b.Config); err != nil {
		return err
	}
	stats.RegisterLayoutHandler(main)
	stats.SetScrollable(!b.sidebar)
	b.content = stats
	return nil
}

func (b *Filebrowser) Draw(f *frame.Frame) {
	if b.sidebar {
		b.picker.Draw(f)
	}
	b.content.Draw(f)
}
