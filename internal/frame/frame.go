// Package frame is the in-memory cell buffer components draw into. A
// frame is rebuilt every render and turned into terminal output by
// String.
package frame

import (
	"strings"

	"pagetui/internal/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Style is the visual attributes of one cell. The zero value is the
// terminal default.
type Style struct {
	Fg        lipgloss.Color
	Bg        lipgloss.Color
	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Reverse   bool
}

// Patch overlays the set attributes of o on s.
func (s Style) Patch(o Style) Style {
	if o.Fg != "" {
		s.Fg = o.Fg
	}
	if o.Bg != "" {
		s.Bg = o.Bg
	}
	s.Bold = s.Bold || o.Bold
	s.Dim = s.Dim || o.Dim
	s.Italic = s.Italic || o.Italic
	s.Underline = s.Underline || o.Underline
	s.Reverse = s.Reverse || o.Reverse
	return s
}

func (s Style) lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Fg != "" {
		ls = ls.Foreground(s.Fg)
	}
	if s.Bg != "" {
		ls = ls.Background(s.Bg)
	}
	return ls.Bold(s.Bold).Faint(s.Dim).Italic(s.Italic).Underline(s.Underline).Reverse(s.Reverse)
}

// Cell is one terminal cell. Width is 0 for the trailing half of a wide
// rune.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

var blank = Cell{Rune: ' ', Width: 1}

// Frame is a grid of cells.
type Frame struct {
	area    layout.Rect
	cells   []Cell
	cursorX int
	cursorY int
	cursor  bool
	styles  map[Style]lipgloss.Style
}

// New returns a blank frame of the given size.
func New(width, height int) *Frame {
	width, height = max(0, width), max(0, height)
	f := &Frame{
		area:   layout.NewRect(0, 0, width, height),
		cells:  make([]Cell, width*height),
		styles: make(map[Style]lipgloss.Style),
	}
	for i := range f.cells {
		f.cells[i] = blank
	}
	return f
}

// Area returns the full frame rect.
func (f *Frame) Area() layout.Rect { return f.area }

func (f *Frame) index(x, y int) (int, bool) {
	if !f.area.Contains(x, y) {
		return 0, false
	}
	return y*f.area.Width + x, true
}

// Cell returns the cell at (x, y), or a blank cell outside the frame.
func (f *Frame) Cell(x, y int) Cell {
	if i, ok := f.index(x, y); ok {
		return f.cells[i]
	}
	return blank
}

// SetCell writes one cell, clipped to the frame.
func (f *Frame) SetCell(x, y int, c Cell) {
	if i, ok := f.index(x, y); ok {
		f.cells[i] = c
	}
}

// SetString writes s from (x, y) on one row, clipped to clip and the
// frame. Wide runes that do not fit are dropped. It returns the column
// after the last written cell.
func (f *Frame) SetString(x, y int, s string, style Style, clip layout.Rect) int {
	clip = clip.Intersect(f.area)
	if y < clip.Y || y >= clip.Bottom() {
		return x
	}
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		if r == '\t' {
			r = ' '
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > clip.Right() {
			break
		}
		if x >= clip.X {
			f.SetCell(x, y, Cell{Rune: r, Width: w, Style: style})
			for i := 1; i < w; i++ {
				f.SetCell(x+i, y, Cell{Width: 0, Style: style})
			}
		}
		x += w
	}
	return x
}

// SetStyle patches style onto every cell of area.
func (f *Frame) SetStyle(area layout.Rect, style Style) {
	area = area.Intersect(f.area)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			i, _ := f.index(x, y)
			f.cells[i].Style = f.cells[i].Style.Patch(style)
		}
	}
}

// Fill sets every cell of area to r with style.
func (f *Frame) Fill(area layout.Rect, r rune, style Style) {
	area = area.Intersect(f.area)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			f.SetCell(x, y, Cell{Rune: r, Width: 1, Style: style})
		}
	}
}

// SetCursor shows the text cursor at (x, y).
func (f *Frame) SetCursor(x, y int) {
	f.cursorX, f.cursorY, f.cursor = x, y, true
}

// Cursor returns the cursor position, if one is shown.
func (f *Frame) Cursor() (int, int, bool) {
	return f.cursorX, f.cursorY, f.cursor
}

// Line returns the plain text of row y with trailing spaces trimmed.
func (f *Frame) Line(y int) string {
	var b strings.Builder
	for x := 0; x < f.area.Width; x++ {
		c := f.Cell(x, y)
		if c.Width == 0 {
			continue
		}
		b.WriteRune(c.Rune)
	}
	return strings.TrimRight(b.String(), " ")
}

// Text returns all rows as plain text joined by newlines.
func (f *Frame) Text() string {
	lines := make([]string, f.area.Height)
	for y := range lines {
		lines[y] = f.Line(y)
	}
	return strings.Join(lines, "\n")
}

// Contains reports whether any row contains s.
func (f *Frame) Contains(s string) bool {
	for y := 0; y < f.area.Height; y++ {
		if strings.Contains(f.Line(y), s) {
			return true
		}
	}
	return false
}

func (f *Frame) render(s Style) lipgloss.Style {
	ls, ok := f.styles[s]
	if !ok {
		ls = s.lipgloss()
		f.styles[s] = ls
	}
	return ls
}

// String renders the frame with styles applied, one line per row.
func (f *Frame) String() string {
	var out strings.Builder
	for y := 0; y < f.area.Height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle == (Style{}) {
				out.WriteString(run.String())
			} else {
				out.WriteString(f.render(runStyle).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < f.area.Width; x++ {
			c := f.Cell(x, y)
			if c.Width == 0 {
				continue
			}
			st := c.Style
			if f.cursor && x == f.cursorX && y == f.cursorY {
				st.Reverse = !st.Reverse
			}
			if st != runStyle {
				flush()
				runStyle = st
			}
			run.WriteRune(c.Rune)
		}
		flush()
	}
	return out.String()
}
