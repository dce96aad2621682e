package frame

import (
	"strings"

	"pagetui/internal/layout"
	"pagetui/internal/state"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Alignment positions a line horizontally in its area.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style Style
}

// Line is one row of spans.
type Line struct {
	Spans []Span
	Align Alignment
}

// Raw builds an unstyled line.
func Raw(s string) Line { return Line{Spans: []Span{{Text: s}}} }

// Styled builds a single-span line.
func Styled(s string, st Style) Line { return Line{Spans: []Span{{Text: s, Style: st}}} }

// Spans builds a line from spans.
func Spans(spans ...Span) Line { return Line{Spans: spans} }

// Centered returns a copy of l aligned to the center.
func (l Line) Centered() Line { l.Align = AlignCenter; return l }

// Plain returns the text of the line without styles.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Width returns the display width of the line.
func (l Line) Width() int { return runewidth.StringWidth(l.Plain()) }

// Text splits s into unstyled lines.
func Text(s string) []Line {
	parts := strings.Split(strings.TrimRight(s, "\n"), "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Raw(p)
	}
	return lines
}

// StyledText splits s into lines of one style.
func StyledText(s string, st Style) []Line {
	lines := Text(s)
	for i := range lines {
		lines[i].Spans[0].Style = st
	}
	return lines
}

func (f *Frame) drawLine(area layout.Rect, y int, l Line, align Alignment, base Style) {
	if l.Align != AlignLeft {
		align = l.Align
	}
	x := area.X
	switch align {
	case AlignCenter:
		x += max(0, (area.Width-l.Width())/2)
	case AlignRight:
		x += max(0, area.Width-l.Width())
	}
	for _, s := range l.Spans {
		x = f.SetString(x, y, s.Text, base.Patch(s.Style), area)
	}
}

// Clear blanks area so an overlay covers whatever was drawn below.
func Clear(f *Frame, area layout.Rect) {
	f.Fill(area, ' ', Style{})
}

// Block is a bordered box with an optional title.
type Block struct {
	Title       string
	TitleAlign  Alignment
	Borders     bool
	Border      lipgloss.Border
	BorderStyle Style
	TitleStyle  Style
	Style       Style
}

// NewBlock returns a rounded bordered block.
func NewBlock(title string) *Block {
	return &Block{Title: title, Borders: true, Border: lipgloss.RoundedBorder()}
}

// Inner returns the area inside the borders.
func (b *Block) Inner(area layout.Rect) layout.Rect {
	if b == nil || !b.Borders {
		return area
	}
	return area.Inset(1)
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

// Render draws the block background, borders and title.
func (b *Block) Render(f *Frame, area layout.Rect) {
	if b == nil || area.IsEmpty() {
		return
	}
	if b.Style != (Style{}) {
		f.SetStyle(area, b.Style)
	}
	if b.Borders {
		bs := b.Style.Patch(b.BorderStyle)
		h := firstRune(b.Border.Top, '─')
		v := firstRune(b.Border.Left, '│')
		for x := area.X; x < area.Right(); x++ {
			f.SetCell(x, area.Y, Cell{Rune: h, Width: 1, Style: bs})
			f.SetCell(x, area.Bottom()-1, Cell{Rune: firstRune(b.Border.Bottom, h), Width: 1, Style: bs})
		}
		for y := area.Y; y < area.Bottom(); y++ {
			f.SetCell(area.X, y, Cell{Rune: v, Width: 1, Style: bs})
			f.SetCell(area.Right()-1, y, Cell{Rune: firstRune(b.Border.Right, v), Width: 1, Style: bs})
		}
		f.SetCell(area.X, area.Y, Cell{Rune: firstRune(b.Border.TopLeft, '┌'), Width: 1, Style: bs})
		f.SetCell(area.Right()-1, area.Y, Cell{Rune: firstRune(b.Border.TopRight, '┐'), Width: 1, Style: bs})
		f.SetCell(area.X, area.Bottom()-1, Cell{Rune: firstRune(b.Border.BottomLeft, '└'), Width: 1, Style: bs})
		f.SetCell(area.Right()-1, area.Bottom()-1, Cell{Rune: firstRune(b.Border.BottomRight, '┘'), Width: 1, Style: bs})
	}
	if b.Title != "" {
		titleArea := layout.NewRect(area.X+1, area.Y, max(0, area.Width-2), 1)
		title := ansi.Truncate(b.Title, titleArea.Width, "…")
		f.drawLine(titleArea, area.Y, Styled(title, b.Style.Patch(b.TitleStyle)), b.TitleAlign, Style{})
	}
}

// Paragraph renders lines of text, optionally wrapped and scrolled.
type Paragraph struct {
	Lines  []Line
	Block  *Block
	Align  Alignment
	Wrap   bool
	Scroll int
	Style  Style
}

// wrapped returns the lines as laid out at width. Lines with several
// spans are clipped rather than wrapped.
func (p Paragraph) wrapped(width int) []Line {
	if !p.Wrap || width <= 0 {
		return p.Lines
	}
	var out []Line
	for _, l := range p.Lines {
		if len(l.Spans) != 1 || l.Width() <= width {
			out = append(out, l)
			continue
		}
		text := wrap.String(wordwrap.String(l.Spans[0].Text, width), width)
		for _, part := range strings.Split(text, "\n") {
			out = append(out, Line{Spans: []Span{{Text: part, Style: l.Spans[0].Style}}, Align: l.Align})
		}
	}
	return out
}

// LineCount returns the number of rows the paragraph needs at width.
func (p Paragraph) LineCount(width int) int {
	return len(p.wrapped(width))
}

// Render draws the paragraph inside its block.
func (p Paragraph) Render(f *Frame, area layout.Rect) {
	p.Block.Render(f, area)
	inner := p.Block.Inner(area)
	if inner.IsEmpty() {
		return
	}
	if p.Style != (Style{}) {
		f.SetStyle(inner, p.Style)
	}
	lines := p.wrapped(inner.Width)
	for row := 0; row < inner.Height; row++ {
		i := p.Scroll + row
		if i < 0 || i >= len(lines) {
			continue
		}
		f.drawLine(inner, inner.Y+row, lines[i], p.Align, p.Style)
	}
}

// List renders items with the selected one highlighted.
type List struct {
	Items           []Line
	Block           *Block
	Style           Style
	HighlightStyle  Style
	HighlightSymbol string
}

// ListOffset returns the first visible item so selected stays in view.
func ListOffset(selected, height int) int {
	if selected < 0 || height <= 0 {
		return 0
	}
	return max(0, selected-height+1)
}

// Render draws the list. selected is -1 for no selection. It returns the
// rect of every visible row and the index of the first one.
func (l List) Render(f *Frame, area layout.Rect, selected int) ([]layout.Rect, int) {
	l.Block.Render(f, area)
	inner := l.Block.Inner(area)
	if inner.IsEmpty() {
		return nil, 0
	}
	offset := ListOffset(selected, inner.Height)
	symbolWidth := runewidth.StringWidth(l.HighlightSymbol)
	pad := strings.Repeat(" ", symbolWidth)

	var rows []layout.Rect
	for row := 0; row < inner.Height; row++ {
		i := offset + row
		if i >= len(l.Items) {
			break
		}
		r := layout.NewRect(inner.X, inner.Y+row, inner.Width, 1)
		rows = append(rows, r)
		st := l.Style
		prefix := pad
		if i == selected {
			st = st.Patch(l.HighlightStyle)
			prefix = l.HighlightSymbol
			f.SetStyle(r, st)
		}
		x := f.SetString(r.X, r.Y, prefix, st, r)
		f.drawLine(layout.NewRect(x, r.Y, max(0, r.Right()-x), 1), r.Y, l.Items[i], AlignLeft, st)
	}
	return rows, offset
}

// Scrollbar draws a vertical scrollbar on the right edge of area. Nothing
// is drawn when the content fits.
func Scrollbar(f *Frame, area layout.Rect, st state.ScrollbarState, style Style) {
	if st.ContentLength <= 0 || area.IsEmpty() {
		return
	}
	x := area.Right() - 1
	track := area
	if area.Height >= 3 {
		f.SetCell(x, area.Y, Cell{Rune: '↑', Width: 1, Style: style})
		f.SetCell(x, area.Bottom()-1, Cell{Rune: '↓', Width: 1, Style: style})
		track = layout.NewRect(area.X, area.Y+1, area.Width, area.Height-2)
	}
	h := track.Height
	thumb := max(1, h*max(1, st.ViewportLength)/(st.ContentLength+max(1, st.ViewportLength)))
	thumb = min(thumb, h)
	pos := min(st.Position, st.ContentLength)
	top := (h - thumb) * pos / st.ContentLength
	for y := 0; y < h; y++ {
		r := '│'
		if y >= top && y < top+thumb {
			r = '█'
		}
		f.SetCell(x, track.Y+y, Cell{Rune: r, Width: 1, Style: style})
	}
}

// LineGauge draws a label followed by a horizontal progress line.
type LineGauge struct {
	Ratio         float64
	Label         string
	Block         *Block
	FilledStyle   Style
	UnfilledStyle Style
}

func (g LineGauge) Render(f *Frame, area layout.Rect) {
	g.Block.Render(f, area)
	inner := g.Block.Inner(area)
	if inner.IsEmpty() {
		return
	}
	y := inner.Y
	x := f.SetString(inner.X, y, g.Label, Style{}, inner)
	if g.Label != "" {
		x = f.SetString(x, y, " ", Style{}, inner)
	}
	width := max(0, inner.Right()-x)
	ratio := min(1, max(0, g.Ratio))
	filled := int(float64(width) * ratio)
	for i := 0; i < width; i++ {
		st := g.UnfilledStyle
		r := '─'
		if i < filled {
			st = g.FilledStyle
			r = '━'
		}
		f.SetCell(x+i, y, Cell{Rune: r, Width: 1, Style: st})
	}
}

var sparkBars = []rune(" ▁▂▃▄▅▆▇█")

// Sparkline draws one bar per data point, bottom aligned.
type Sparkline struct {
	Data  []uint64
	Max   uint64
	Block *Block
	Style Style
}

func (s Sparkline) Render(f *Frame, area layout.Rect) {
	s.Block.Render(f, area)
	inner := s.Block.Inner(area)
	if inner.IsEmpty() || len(s.Data) == 0 {
		return
	}
	maxV := s.Max
	if maxV == 0 {
		for _, v := range s.Data {
			maxV = max(maxV, v)
		}
	}
	if maxV == 0 {
		return
	}
	for col := 0; col < inner.Width && col < len(s.Data); col++ {
		// Height in eighths of a cell.
		level := int(min(s.Data[col], maxV) * uint64(inner.Height*8) / maxV)
		for row := inner.Height - 1; row >= 0 && level > 0; row-- {
			step := min(8, level)
			f.SetCell(inner.X+col, inner.Y+row, Cell{Rune: sparkBars[step], Width: 1, Style: s.Style})
			level -= step
		}
	}
}
