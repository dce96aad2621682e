package components

import (
	"strings"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// column lists bindings top to bottom in a single help column.
type column []key.Binding

func (c column) ShortHelp() []key.Binding  { return c }
func (c column) FullHelp() [][]key.Binding { return [][]key.Binding{c} }

// Help lists the bindings of the current page followed by the global ones.
type Help struct {
	component.Base
	model help.Model
	shown bool
	mode  types.Mode
}

func NewHelp() *Help {
	m := help.New()
	m.ShowAll = true
	return &Help{model: m}
}

func (h *Help) Active() bool { return h.shown }

func (h *Help) HandleKeyEvents(k tea.KeyMsg) action.Action {
	if !h.shown {
		return action.Action{}
	}
	switch k.String() {
	case "esc", "?", "ctrl+@", "q":
		return action.Of(action.ToggleShowHelp)
	}
	return action.Action{}
}

func (h *Help) RegisterLayoutHandler(area layout.Rect) {
	w := min(area.Width, max(36, area.Width*17/100))
	h.Area = layout.NewRect(area.Right()-w, area.Y, w, area.Height)
}

func (h *Help) Update(a action.Action, ctx *component.Ctx) (action.Action, error) {
	if ctx != nil {
		h.mode = ctx.Mode
	}
	if a.Kind == action.ToggleShowHelp {
		h.shown = !h.shown
	}
	return action.Action{}, nil
}

// Lines renders the help text for the current mode.
func (h *Help) Lines(width int) []string {
	bindings := append(h.Keymap(h.mode).Bindings(), h.Keymap(types.Global).Bindings()...)
	m := h.model
	m.Width = width
	text := ansi.Strip(m.View(column(bindings)))
	return strings.Split(text, "\n")
}

func (h *Help) Draw(f *frame.Frame) {
	if !h.shown {
		return
	}
	block := frame.NewBlock("Help: " + h.mode.String())
	block.BorderStyle = frame.Style{Fg: h.Palette().Info}

	frame.Clear(f, h.Area)
	inner := block.Inner(h.Area)
	lines := make([]frame.Line, 0)
	for _, l := range h.Lines(inner.Width) {
		lines = append(lines, frame.Raw(l))
	}
	frame.Paragraph{Lines: lines, Block: block}.Render(f, h.Area)
}
