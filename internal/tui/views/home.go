package views

import (
	"fmt"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/tui/components"
	"pagetui/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Home is the landing page: a counter changed by delayed background tasks
// and a scratch input whose lines are echoed back.
type Home struct {
	component.Base
	counter      int
	renderTicker int
	lines        []string
	input        *components.TextField
	delay        time.Duration
	areas        []layout.Rect
}

func NewHome(opts Options) *Home {
	opts = opts.withDefaults()
	return &Home{
		input: components.NewTextField("Enter Input InputMode (Press / to start, ESC to finish)"),
		delay: opts.Delay,
	}
}

func (h *Home) Counter() int { return h.counter }

func (h *Home) Lines() []string { return h.lines }

func (h *Home) RegisterLayoutHandler(area layout.Rect) {
	h.Area = area
	h.areas = layout.VerticalLayout(layout.Fill(1), layout.Length(3)).Split(area)
}

func (h *Home) HandleKeyEvents(key tea.KeyMsg) action.Action {
	switch h.Mode {
	case types.Normal:
		return h.Keymap(types.Home).Lookup(key)
	case types.Insert:
		switch key.String() {
		case "esc":
			return action.Of(action.EnterNormal)
		case "enter":
			h.Send(action.NewCompleteInput(h.input.Value()))
			h.input.Reset()
			return action.Of(action.EnterNormal)
		}
		h.input.HandleKey(key)
	}
	return action.Action{}
}

// schedule changes the counter after the delay, showing Processing while
// it waits.
func (h *Home) schedule(change action.Action) {
	if h.Tx == nil {
		return
	}
	tx, delay := h.Tx, h.delay
	go func() {
		tx.Send(action.Of(action.EnterProcessing))
		time.Sleep(delay)
		tx.Send(change)
		tx.Send(action.Of(action.EnterNormal))
	}()
}

func (h *Home) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.Render:
		h.renderTicker++
	case action.ScheduleIncrement:
		h.schedule(action.NewIncrement(1))
	case action.ScheduleDecrement:
		h.schedule(action.NewDecrement(1))
	case action.Increment:
		h.counter += a.Count
	case action.Decrement:
		h.counter = max(0, h.counter-a.Count)
	case action.CompleteInput:
		if a.Text != "" {
			h.lines = append(h.lines, a.Text)
		}
	case action.EnterNormal:
		h.Mode = types.Normal
	case action.EnterInsert:
		h.Mode = types.Insert
	case action.EnterProcessing:
		h.Mode = types.Processing
	}
	return action.Action{}, nil
}

func (h *Home) Draw(f *frame.Frame) {
	if len(h.areas) < 2 {
		return
	}
	pal := h.Palette()
	key := frame.Style{Fg: pal.Error}
	word := frame.Style{Fg: pal.Warning}

	text := []frame.Line{
		frame.Raw(""),
		frame.Spans(
			frame.Span{Text: "Press "}, frame.Span{Text: "+", Style: key},
			frame.Span{Text: " or "}, frame.Span{Text: "-", Style: key},
			frame.Span{Text: " to "}, frame.Span{Text: "increment", Style: word},
			frame.Span{Text: " or "}, frame.Span{Text: "decrement", Style: word},
			frame.Span{Text: "."},
		),
		frame.Raw(""),
		frame.Styled(fmt.Sprintf("Counter: %d", h.counter), frame.Style{Bold: true}),
		frame.Raw(fmt.Sprintf("Render Ticker: %d", h.renderTicker)),
		frame.Raw(""),
		frame.Styled("Type into input and hit enter to display here", frame.Style{Dim: true}),
		frame.Raw(""),
	}
	for _, l := range h.lines {
		text = append(text, frame.Raw(l))
	}

	block := frame.NewBlock("Home")
	block.TitleAlign = frame.AlignCenter
	if h.Mode == types.Processing {
		block.BorderStyle = frame.Style{Fg: pal.Warning}
	}
	frame.Paragraph{
		Lines: text,
		Block: block,
		Align: frame.AlignCenter,
		Style: frame.Style{Fg: pal.Info},
	}.Render(f, h.areas[0])

	st := frame.Style{}
	if h.Mode == types.Insert {
		st = frame.Style{Fg: pal.Warning}
	}
	h.input.Render(f, h.areas[1], st, h.Mode == types.Insert)
}
