// Package state holds the cursors behind scrollable text and lists.
package state

import (
	"pagetui/internal/layout"
	"pagetui/internal/log"
)

// ScrollbarState is the read-only projection a scrollbar renders from.
type ScrollbarState struct {
	ContentLength  int
	Position       int
	ViewportLength int
}

// ScrollState tracks a vertical offset into content of Max lines shown
// through a viewport of ViewSize lines. Position stays within
// [0, Max-ViewSize] after every operation.
type ScrollState struct {
	Position int
	ViewSize int
	Max      int
}

// NewScrollState returns a cursor at the top of max lines.
func NewScrollState(max int) ScrollState {
	return ScrollState{Max: max}
}

func (s *ScrollState) limit() int {
	return max(0, s.Max-s.ViewSize)
}

func (s *ScrollState) ScrollUp() {
	s.Position = max(0, s.Position-1)
}

func (s *ScrollState) ScrollDown() {
	s.Position = min(s.Position+1, s.limit())
}

func (s *ScrollState) ScrollPageUp() {
	s.Position = max(0, s.Position-s.ViewSize)
}

func (s *ScrollState) ScrollPageDown() {
	s.Position = min(s.Position+s.ViewSize, s.limit())
}

func (s *ScrollState) ScrollTop() {
	s.Position = 0
}

func (s *ScrollState) ScrollBottom() {
	s.Position = s.limit()
}

// SetViewSize records the viewport height from the layout pass and
// re-clamps the position.
func (s *ScrollState) SetViewSize(n int) {
	s.ViewSize = max(0, n)
	s.Position = min(s.Position, s.limit())
}

// Scrollbar projects the cursor for rendering.
func (s ScrollState) Scrollbar() ScrollbarState {
	return ScrollbarState{
		ContentLength:  s.limit(),
		Position:       s.Position,
		ViewportLength: s.ViewSize,
	}
}

// ViewportSize sizes a viewer for content of lines lines shown in an area
// of height rows. Short content gets no reserved viewport; long content
// reserves a sixth of the height so the last lines can scroll into view.
func ViewportSize(lines, height int) int {
	if lines < height {
		return 0
	}
	return height/2 - height/3
}

// ScrollForContent builds the cursor for content of lines lines viewed at
// the given height. The reserved viewport is taken off Max, so the
// position runs up to lines-view.
func ScrollForContent(lines, height int) ScrollState {
	return NewScrollState(max(0, lines-ViewportSize(lines, height)))
}

// MouseListState is a scroll cursor over clickable rows. Areas caches the
// screen rect of each row from the last layout pass.
type MouseListState struct {
	Position int
	ViewSize int
	Areas    []layout.Rect
	Selected int
	Max      int
}

// NewMouseListState returns a cursor over max rows with nothing selected.
func NewMouseListState(max int) MouseListState {
	return MouseListState{ViewSize: 1, Selected: -1, Max: max}
}

func (s *MouseListState) limit() int {
	return max(0, s.Max-s.ViewSize)
}

// Select moves to row i. Out of range indexes are logged and ignored.
func (s *MouseListState) Select(i int) {
	if i < 0 || i >= s.Max {
		log.LogWithFields(log.F("index", i), log.F("max", s.Max)).Error("Selection out of range")
		return
	}
	s.Selected = i
	s.Position = i
}

// Unselect clears the selection.
func (s *MouseListState) Unselect() {
	s.Selected = -1
}

// Hit returns the index of the cached row containing (x, y), or -1.
func (s *MouseListState) Hit(x, y int) int {
	for i, r := range s.Areas {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (s *MouseListState) ScrollUp() {
	s.Position = max(0, s.Position-1)
}

func (s *MouseListState) ScrollDown() {
	s.Position = min(s.Position+1, s.limit())
}

func (s *MouseListState) ScrollPageUp() {
	s.Position = max(0, s.Position-s.ViewSize)
}

func (s *MouseListState) ScrollPageDown() {
	s.Position = min(s.Position+s.ViewSize, s.limit())
}

func (s *MouseListState) ScrollTop() {
	s.Position = 0
}

func (s *MouseListState) ScrollBottom() {
	s.Position = s.limit()
}

func (s MouseListState) Scrollbar() ScrollbarState {
	return ScrollbarState{
		ContentLength:  s.limit(),
		Position:       s.Position,
		ViewportLength: s.ViewSize,
	}
}
