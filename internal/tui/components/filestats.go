package components

import (
	"strings"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/component"
	"pagetui/internal/files"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
	"pagetui/internal/state"
)

// Filestats shows a file's title, creation time, metadata and scrollable
// content.
type Filestats struct {
	component.Base
	Title      string
	Ctime      time.Time
	Content    string
	Desc       files.Description
	scroll     state.ScrollState
	scrollable bool

	header, stamp, body layout.Rect
}

func NewFilestats(title string, ctime time.Time, content string, scroll state.ScrollState) *Filestats {
	return &Filestats{Title: title, Ctime: ctime, Content: content, scroll: scroll}
}

// LineCount is the number of lines in the content.
func LineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(strings.TrimRight(content, "\n"), "\n") + 1
}

func (s *Filestats) Scroll() state.ScrollState { return s.scroll }

// Scrollable reports whether Forward/Back scroll the content.
func (s *Filestats) Scrollable() bool { return s.scrollable }

func (s *Filestats) SetScrollable(v bool) { s.scrollable = v }

// BodyHeight is the number of content rows from the last layout pass.
func (s *Filestats) BodyHeight() int { return max(0, s.body.Height-2) }

func (s *Filestats) RegisterLayoutHandler(area layout.Rect) {
	s.Area = area
	rows := layout.VerticalLayout(layout.Length(3), layout.Fill(1)).Split(area)
	top := layout.Horizontal(layout.Percentage(70), layout.Percentage(30)).Split(rows[0])
	s.header, s.stamp, s.body = top[0], top[1], rows[1]

	// The reserved viewport from construction is replaced by the real body
	// height, so the position stops once the last line is on screen.
	s.scroll.Max = LineCount(s.Content)
	s.scroll.SetViewSize(s.BodyHeight())
}

func (s *Filestats) Update(a action.Action, _ *component.Ctx) (action.Action, error) {
	switch a.Kind {
	case action.ToggleSidebar:
		s.scrollable = !s.scrollable
	case action.Forward:
		if s.scrollable {
			s.scroll.ScrollDown()
		}
	case action.Back:
		if s.scrollable {
			s.scroll.ScrollUp()
		}
	case action.ScrollDown:
		s.scroll.ScrollDown()
	case action.ScrollUp:
		s.scroll.ScrollUp()
	}
	return action.Action{}, nil
}

// ScrollTop resets the view to the first line.
func (s *Filestats) ScrollTop() {
	s.scroll.ScrollTop()
}

func (s *Filestats) Draw(f *frame.Frame) {
	if s.Area.IsEmpty() {
		return
	}
	pal := s.Palette()
	border := frame.Style{Fg: pal.Border}

	title := frame.NewBlock("")
	title.BorderStyle = border
	frame.Paragraph{
		Lines: []frame.Line{frame.Styled("File: "+s.Title, frame.Style{Fg: pal.Primary, Bold: true})},
		Block: title,
	}.Render(f, s.header)

	stamp := ""
	if !s.Ctime.IsZero() {
		stamp = s.Ctime.Format("2006-01-02 15:04") + " (" + files.Age(s.Ctime) + ")"
	}
	created := frame.NewBlock("")
	created.BorderStyle = border
	frame.Paragraph{Lines: []frame.Line{frame.Styled(stamp, frame.Style{Fg: pal.Muted})}, Block: created}.Render(f, s.stamp)

	body := frame.NewBlock(s.Desc.Summary())
	body.BorderStyle = border
	if s.scrollable {
		body.BorderStyle = frame.Style{Fg: pal.Emphasis}
	}
	frame.Paragraph{Lines: frame.Text(s.Content), Block: body, Wrap: true, Scroll: s.scroll.Position}.Render(f, s.body)
	frame.Scrollbar(f, body.Inner(s.body), s.scroll.Scrollbar(), frame.Style{Fg: pal.Muted})
}
