package components

import (
	"strings"

	"pagetui/internal/frame"
	"pagetui/internal/layout"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// TextField is a single line editor drawn into a bordered box. Editing
// goes through bubbles/textinput; drawing goes through the frame so the
// cursor lands in the right cell.
type TextField struct {
	input  textinput.Model
	Title  string
	Masked bool
}

func NewTextField(title string) *TextField {
	in := textinput.New()
	in.Prompt = ""
	in.Focus()
	return &TextField{input: in, Title: title}
}

// HandleKey applies one edit key.
func (t *TextField) HandleKey(key tea.KeyMsg) {
	t.input, _ = t.input.Update(key)
}

func (t *TextField) Value() string { return t.input.Value() }

func (t *TextField) SetValue(s string) { t.input.SetValue(s) }

func (t *TextField) Reset() { t.input.Reset() }

// Cursor is the rune offset of the cursor.
func (t *TextField) Cursor() int { return t.input.Position() }

func (t *TextField) display() string {
	if t.Masked {
		return strings.Repeat("•", len([]rune(t.input.Value())))
	}
	return t.input.Value()
}

// Render draws the field. A focused field places the terminal cursor.
func (t *TextField) Render(f *frame.Frame, area layout.Rect, style frame.Style, focused bool) {
	block := frame.NewBlock(t.Title)
	block.BorderStyle = style
	block.Render(f, area)
	inner := block.Inner(area)
	if inner.IsEmpty() {
		return
	}

	text := []rune(t.display())
	cursor := min(t.Cursor(), len(text))
	// Scroll horizontally so the cursor stays visible.
	start := 0
	for runewidth.StringWidth(string(text[start:cursor])) >= inner.Width && start < cursor {
		start++
	}
	f.SetString(inner.X, inner.Y, string(text[start:]), style, inner)
	if focused {
		x := inner.X + runewidth.StringWidth(string(text[start:cursor]))
		f.SetCursor(min(x, inner.Right()-1), inner.Y)
	}
}
