package components

import (
	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"

	tea "github.com/charmbracelet/bubbletea"
)

var choices = []string{"No", "Yes"}

// choiceKeys maps the keys shared by the popup and quit dialogs.
func choiceKeys(key tea.KeyMsg) action.Action {
	switch key.String() {
	case "esc":
		return action.Of(action.ClosePopup)
	case "enter":
		return action.Of(action.SelectOption)
	case "h", "left":
		return action.Of(action.Back)
	case "l", "right":
		return action.Of(action.Forward)
	}
	return action.Action{}
}

func renderChoices(f *frame.Frame, area layout.Rect, index int, highlight frame.Style) {
	spans := make([]frame.Span, 0, 3)
	for i, c := range choices {
		if i > 0 {
			spans = append(spans, frame.Span{Text: " | "})
		}
		st := frame.Style{}
		if i == index {
			st = highlight
		}
		spans = append(spans, frame.Span{Text: " " + c + " ", Style: st})
	}
	frame.Paragraph{Lines: []frame.Line{frame.Spans(spans...)}, Align: frame.AlignCenter}.Render(f, area)
}

// Popup is a stack of modal dialogs. A dialog with a follow-up action
// offers No|Yes, and Yes returns the follow-up.
type Popup struct {
	component.Base
	stack []Modal
	index int
}

func NewPopup() *Popup {
	return &Popup{}
}

func (p *Popup) Active() bool { return len(p.stack) > 0 }

// Index is the highlighted choice, 0 for No and 1 for Yes.
func (p *Popup) Index() int { return p.index }

func (p *Popup) Front() (Modal, bool) {
	if len(p.stack) == 0 {
		return Modal{}, false
	}
	return p.stack[len(p.stack)-1], true
}

func (p *Popup) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
	p.index = 0
}

func (p *Popup) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if !p.Active() {
		return action.Action{}
	}
	return choiceKeys(key)
}

func (p *Popup) RegisterLayoutHandler(area layout.Rect) {
	w := area.Width * 40 / 100
	h := min(area.Height, max(5, area.Height*15/100))
	p.Area = layout.NewRect(area.X+(area.Width-w)/2, area.Y+(area.Height-h)/2, w, h)
}

func (p *Popup) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	if a.Kind == action.Popup {
		p.stack = append(p.stack, Modal{Title: a.Text, Content: a.Detail, Follow: a.Follow})
		p.index = 0
		return action.Action{}, nil
	}
	m, ok := p.Front()
	if !ok {
		return action.Action{}, nil
	}

	switch a.Kind {
	case action.Forward, action.Back:
		p.index = (p.index + 1) % len(choices)
	case action.ClosePopup:
		p.pop()
	case action.SelectOption:
		yes := p.index == 1
		p.pop()
		if yes && m.Follow != nil {
			return *m.Follow, nil
		}
	}
	return action.Action{}, nil
}

func (p *Popup) Draw(f *frame.Frame) {
	m, ok := p.Front()
	if !ok {
		return
	}
	pal := p.Palette()
	block := frame.NewBlock(m.Title + " [x]")
	block.BorderStyle = frame.Style{Fg: pal.Primary}
	block.TitleStyle = frame.Style{Bold: true}

	frame.Clear(f, p.Area)
	block.Render(f, p.Area)
	inner := block.Inner(p.Area)
	body := inner
	if m.Follow != nil && inner.Height > 1 {
		body.Height--
		row := layout.NewRect(inner.X, inner.Bottom()-1, inner.Width, 1)
		renderChoices(f, row, p.index, frame.Style{Fg: pal.Success, Reverse: true})
	}
	frame.Paragraph{Lines: frame.Text(m.Content), Wrap: true, Align: frame.AlignCenter}.Render(f, body)
}

// Quit asks for confirmation before the application exits.
type Quit struct {
	component.Base
	shown bool
	index int
}

func NewQuit() *Quit {
	return &Quit{}
}

func (q *Quit) Active() bool { return q.shown }

func (q *Quit) Index() int { return q.index }

func (q *Quit) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if !q.shown {
		return action.Action{}
	}
	return choiceKeys(key)
}

func (q *Quit) RegisterLayoutHandler(area layout.Rect) {
	w := min(area.Width, max(24, area.Width*15/100))
	q.Area = layout.NewRect(area.X+(area.Width-w)/2, area.Y, w, min(3, area.Height))
}

func (q *Quit) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	if a.Kind == action.ToggleShowQuit {
		q.shown = !q.shown
		q.index = 0
		return action.Action{}, nil
	}
	if !q.shown {
		return action.Action{}, nil
	}

	switch a.Kind {
	case action.Forward, action.Back:
		q.index = (q.index + 1) % len(choices)
	case action.ClosePopup:
		q.shown = false
	case action.SelectOption:
		q.shown = false
		if q.index == 1 {
			return action.Of(action.Quit), nil
		}
	}
	return action.Action{}, nil
}

func (q *Quit) Draw(f *frame.Frame) {
	if !q.shown {
		return
	}
	pal := q.Palette()
	block := frame.NewBlock("Close Application?")
	block.TitleAlign = frame.AlignCenter
	block.BorderStyle = frame.Style{Fg: pal.Error}

	frame.Clear(f, q.Area)
	block.Render(f, q.Area)
	renderChoices(f, block.Inner(q.Area), q.index, frame.Style{Fg: pal.Error, Reverse: true})
}
