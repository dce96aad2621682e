package views

import (
	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/config"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Music is the player page: an audio file sidebar, transport controls and
// a waveform.
type Music struct {
	component.Base
	picker   *components.Filepicker
	chooser  *components.Filepicker
	controls *components.Controls
	wave     *components.Wave
	sidebar  bool
}

func NewMusic(opts Options) *Music {
	opts = opts.withDefaults()
	return &Music{
		Base: component.Base{Mode: types.Select},
		picker: components.NewFilepicker(components.PickerOptions{
			Filter:  (*config.AppConfiguration).MusicFilter,
			Watcher: opts.Watcher,
		}),
		chooser:  components.NewFilepicker(components.PickerOptions{Popup: true}),
		controls: components.NewControls(opts.Clock),
		wave:     components.NewWave(uint64(opts.Clock().UnixNano())),
		sidebar:  true,
	}
}

func (m *Music) Picker() *components.Filepicker { return m.picker }

func (m *Music) Controls() *components.Controls { return m.controls }

func (m *Music) children() component.Group {
	return component.Group{m.picker, m.chooser, m.controls, m.wave}
}

func (m *Music) RegisterActionHandler(tx action.Sender) {
	m.Tx = tx
	m.children().RegisterActionHandler(tx)
}

func (m *Music) RegisterConfigHandler(cfg *config.AppConfiguration) error {
	m.Config = cfg
	return m.children().RegisterConfigHandler(cfg)
}

func (m *Music) RegisterLayoutHandler(area layout.Rect) {
	m.Area = area
	side, main := sidebarLayout(area, m.sidebar)
	rows := layout.VerticalLayout(layout.Percentage(20), layout.Fill(1)).Split(main)
	m.picker.RegisterLayoutHandler(side)
	m.controls.RegisterLayoutHandler(rows[0])
	m.wave.RegisterLayoutHandler(rows[1])
	m.chooser.RegisterLayoutHandler(area)
}

func (m *Music) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if m.chooser.Shown() {
		return m.chooser.HandleKeyEvents(key)
	}
	if m.sidebar {
		if a := m.picker.HandleKeyEvents(key); !a.IsNone() {
			return a
		}
	}
	if m.Mode == types.Select && sidebarKeys(key) {
		return action.Of(action.ToggleSidebar)
	}
	return m.Keymap(types.Music).Lookup(key)
}

func (m *Music) HandleMouseEvents(msg tea.MouseMsg) action.Action {
	if m.chooser.Shown() {
		return m.chooser.HandleMouseEvents(msg)
	}
	if m.sidebar {
		return m.picker.HandleMouseEvents(msg)
	}
	return action.Action{}
}

func (m *Music) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if _, err := m.chooser.Update(a, ctx); err != nil {
		return action.Action{}, err
	}
	if m.sidebar || a.Kind == action.Refresh {
		if _, err := m.picker.Update(a, ctx); err != nil {
			return action.Action{}, err
		}
	}
	for _, c := range []component.Component{m.controls, m.wave} {
		if _, err := c.Update(a, ctx); err != nil {
			return action.Action{}, err
		}
	}

	switch a.Kind {
	case action.OpenFile:
		return action.Action{}, m.picker.Load(a.Text)
	case action.ToggleSidebar:
		m.sidebar = !m.sidebar
		if m.sidebar {
			m.Mode = types.Select
		} else {
			m.Mode = types.Normal
		}
		m.RegisterLayoutHandler(m.Area)
	case action.SelectOption:
		if e, ok := m.picker.Selected(); ok && !e.IsDir {
			m.controls.SetTrack(e.Name)
		}
	}
	return action.Action{}, nil
}

func (m *Music) Draw(f *frame.Frame) {
	if m.sidebar {
		m.picker.Draw(f)
	}
	m.controls.Draw(f)
	m.wave.Draw(f)
	m.chooser.Draw(f)
}
