package components

import (
	"time"

	"pagetui/internal/frame"
	"pagetui/internal/layout"

	"github.com/charmbracelet/bubbles/spinner"
)

// Braille is the eight frame spinner drawn while a request is in flight.
var Braille = spinner.Spinner{
	Frames: []string{"⡇", "⠏", "⠛", "⠹", "⢸", "⣰", "⣤", "⣆"},
	FPS:    time.Second / 10,
}

// Loader advances one spinner frame every third render.
type Loader struct {
	spinner spinner.Spinner
	ticker  int
	Label   string
}

func NewLoader(label string) *Loader {
	return &Loader{spinner: Braille, Label: label}
}

// Tick is called once per Render action.
func (l *Loader) Tick() {
	l.ticker++
}

func (l *Loader) Reset() {
	l.ticker = 0
}

// Frame returns the current spinner glyph.
func (l *Loader) Frame() string {
	n := len(l.spinner.Frames)
	return l.spinner.Frames[(l.ticker/3)%n]
}

// Render draws the glyph and label centered on the first row of area.
func (l *Loader) Render(f *frame.Frame, area layout.Rect, st frame.Style) {
	if area.IsEmpty() {
		return
	}
	text := l.Frame()
	if l.Label != "" {
		text += " " + l.Label
	}
	frame.Paragraph{
		Lines: []frame.Line{frame.Styled(text, st)},
		Align: frame.AlignCenter,
	}.Render(f, layout.NewRect(area.X, area.Y+area.Height/2, area.Width, 1))
}
