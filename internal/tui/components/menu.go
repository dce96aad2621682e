package components

import (
	"slices"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Menu is a popup list of the navigable pages.
type Menu struct {
	component.Base
	items state.StatefulList[types.Mode]
	shown bool
}

func NewMenu() *Menu {
	return &Menu{items: state.NewStatefulList(slices.Clone(types.NavigableModes))}
}

func (m *Menu) Active() bool { return m.shown }

// Selected returns the highlighted page.
func (m *Menu) Selected() (types.Mode, bool) {
	return m.items.SelectedItem()
}

func (m *Menu) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if !m.shown {
		return action.Action{}
	}
	switch key.String() {
	case "esc", "tab":
		return action.Of(action.ToggleNav)
	case "j", "down":
		return action.Of(action.Forward)
	case "k", "up":
		return action.Of(action.Back)
	case "enter":
		return action.Of(action.SelectOption)
	}
	return action.Action{}
}

func (m *Menu) RegisterLayoutHandler(area layout.Rect) {
	h := min(area.Height, len(types.NavigableModes)+2)
	w := min(area.Width, max(24, area.Width*20/100))
	m.Area = layout.NewRect(area.X+(area.Width-w)/2, area.Y+(area.Height-h)/2, w, h)
}

func (m *Menu) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if a.Kind == action.ToggleNav {
		m.shown = !m.shown
		if m.shown {
			m.items.Unselect()
			for i, mode := range m.items.Items {
				if ctx != nil && mode == ctx.Mode {
					m.items.Select(i)
				}
			}
			if _, ok := m.items.Selected(); !ok {
				m.items.Select(0)
			}
		}
		return action.Action{}, nil
	}
	if !m.shown {
		return action.Action{}, nil
	}

	switch a.Kind {
	case action.Forward:
		m.items.Next()
	case action.Back:
		m.items.Previous()
	case action.SelectOption:
		m.shown = false
		if mode, ok := m.items.SelectedItem(); ok {
			return action.NewChangeMode(mode), nil
		}
	}
	return action.Action{}, nil
}

func (m *Menu) Draw(f *frame.Frame) {
	if !m.shown {
		return
	}
	pal := m.Palette()
	items := make([]frame.Line, len(m.items.Items))
	for i, mode := range m.items.Items {
		items[i] = frame.Raw(mode.String())
	}
	block := frame.NewBlock("Menu")
	block.BorderStyle = frame.Style{Fg: pal.Primary}

	selected, ok := m.items.Selected()
	if !ok {
		selected = -1
	}
	frame.Clear(f, m.Area)
	frame.List{
		Items:           items,
		Block:           block,
		HighlightStyle:  frame.Style{Fg: pal.Emphasis, Bold: true},
		HighlightSymbol: "> ",
	}.Render(f, m.Area, selected)
}
