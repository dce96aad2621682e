package components

import (
	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation is the tab bar across the top of the screen.
type Navigation struct {
	component.Base
	tabs    state.MouseListState
	current types.Mode
	hover   int
}

func NewNavigation() *Navigation {
	n := &Navigation{tabs: state.NewMouseListState(len(types.NavigableModes)), hover: -1}
	n.tabs.Select(0)
	return n
}

// Hover returns the tab under the mouse, or -1.
func (n *Navigation) Hover() int { return n.hover }

func indexOf(m types.Mode) int {
	for i, nm := range types.NavigableModes {
		if nm == m {
			return i
		}
	}
	return -1
}

func (n *Navigation) RegisterLayoutHandler(area layout.Rect) {
	n.Area = area
	inner := frame.NewBlock("").Inner(area)
	cs := make([]layout.Constraint, len(types.NavigableModes))
	for i := range cs {
		cs[i] = layout.Fill(1)
	}
	n.tabs.Areas = layout.Horizontal(cs...).Split(inner)
}

func (n *Navigation) HandleMouseEvents(m tea.MouseMsg) action.Action {
	i := n.tabs.Hit(m.X, m.Y)
	n.hover = i
	if i >= 0 && component.IsClick(m) {
		return action.NewChangeMode(types.NavigableModes[i])
	}
	return action.Action{}
}

func (n *Navigation) step(d int) action.Action {
	i := indexOf(n.current)
	if i < 0 {
		i = 0
	} else {
		i = (i + d + len(types.NavigableModes)) % len(types.NavigableModes)
	}
	return action.NewChangeMode(types.NavigableModes[i])
}

func (n *Navigation) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if ctx != nil {
		n.current = ctx.Mode
	}
	switch a.Kind {
	case action.ChangeMode:
		n.current = a.Mode
		if i := indexOf(a.Mode); i >= 0 {
			n.tabs.Select(i)
		}
	case action.NextView:
		return n.step(1), nil
	case action.PreviousView:
		return n.step(-1), nil
	}
	return action.Action{}, nil
}

func (n *Navigation) Draw(f *frame.Frame) {
	if n.Area.IsEmpty() {
		return
	}
	pal := n.Palette()
	block := frame.NewBlock("")
	block.BorderStyle = frame.Style{Fg: pal.Border}
	block.Render(f, n.Area)

	current := indexOf(n.current)
	for i, r := range n.tabs.Areas {
		label := types.NavigableModes[i].String()
		st := frame.Style{Fg: pal.Muted}
		switch {
		case i == current:
			label = "[" + label + "]"
			st = frame.Style{Fg: pal.Primary, Bold: true}
		case i == n.hover:
			st = frame.Style{Fg: pal.Emphasis, Underline: true}
		}
		frame.Paragraph{Lines: []frame.Line{frame.Styled(label, st)}, Align: frame.AlignCenter}.Render(f, r)
	}
}
