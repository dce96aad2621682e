package components

import (
	"fmt"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"

	tea "github.com/charmbracelet/bubbletea"
)

// Modal is one stacked popup or toast.
type Modal struct {
	Title    string
	Content  string
	Follow   *action.Action
	Duration time.Duration
}

// Clock returns the current time. Tests replace it to step the countdown.
type Clock func() time.Time

// Toast shows transient notifications in the top right corner. The front
// toast loses one second per render tick once a wall-clock second has
// passed, and is popped at zero.
type Toast struct {
	component.Base
	stack   []Modal
	started time.Time
	now     Clock
}

func NewToast(now Clock) *Toast {
	if now == nil {
		now = time.Now
	}
	return &Toast{now: now}
}

// Active reports whether a toast is visible.
func (t *Toast) Active() bool { return len(t.stack) > 0 }

// Front returns the toast being shown.
func (t *Toast) Front() (Modal, bool) {
	if len(t.stack) == 0 {
		return Modal{}, false
	}
	return t.stack[0], true
}

func (t *Toast) Len() int { return len(t.stack) }

func (t *Toast) push(title, content string) {
	if len(t.stack) == 0 {
		t.started = t.now()
	}
	t.stack = append(t.stack, Modal{
		Title:    title,
		Content:  content,
		Duration: t.Config.PopupDuration(),
	})
}

func (t *Toast) pop() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[1:]
	t.started = t.now()
}

func (t *Toast) tick() {
	if len(t.stack) == 0 {
		return
	}
	now := t.now()
	if now.Sub(t.started) < time.Second {
		return
	}
	t.started = now
	t.stack[0].Duration -= time.Second
	if t.stack[0].Duration <= 0 {
		t.pop()
	}
}

// HandleKeyEvents lets a visible toast claim Esc.
func (t *Toast) HandleKeyEvents(key tea.KeyMsg) action.Action {
	if t.Active() && key.Type == tea.KeyEsc {
		return action.Of(action.CloseToast)
	}
	return action.Action{}
}

func (t *Toast) RegisterLayoutHandler(area layout.Rect) {
	w := max(20, area.Width*15/100)
	h := max(3, area.Height*15/100)
	t.Area = layout.NewRect(area.Right()-min(w, area.Width), area.Y, min(w, area.Width), min(h, area.Height))
}

func (t *Toast) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.Toast:
		t.push(a.Text, a.Detail)
	case action.Error:
		t.push("Error", a.Text)
	case action.CloseToast:
		t.pop()
	case action.Render:
		t.tick()
	}
	return action.Action{}, nil
}

func (t *Toast) Draw(f *frame.Frame) {
	m, ok := t.Front()
	if !ok {
		return
	}
	p := t.Palette()
	color := p.Info
	if m.Title == "Error" || m.Title == "Validation Error" {
		color = p.Error
	}
	block := frame.NewBlock(fmt.Sprintf("%s (%ds)", m.Title, int(m.Duration/time.Second)))
	block.BorderStyle = frame.Style{Fg: color}
	block.TitleStyle = frame.Style{Fg: color, Bold: true}

	frame.Clear(f, t.Area)
	frame.Paragraph{Lines: frame.Text(m.Content), Block: block, Wrap: true}.Render(f, t.Area)
}
