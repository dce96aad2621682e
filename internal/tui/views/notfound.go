package views

import (
	"pagetui/internal/component"
	"pagetui/internal/frame"
	"pagetui/internal/layout"
)

// NotFound is drawn for a mode without a page.
type NotFound struct {
	component.Base
}

func NewNotFound() *NotFound { return &NotFound{} }

func (n *NotFound) Draw(f *frame.Frame) {
	if n.Area.IsEmpty() {
		return
	}
	pal := n.Palette()
	rows := layout.VerticalLayout(layout.Fill(1), layout.Length(1), layout.Length(1), layout.Fill(1)).Split(n.Area)
	frame.Paragraph{
		Lines: []frame.Line{frame.Styled("[404]", frame.Style{Fg: pal.Error, Bold: true})},
		Align: frame.AlignCenter,
	}.Render(f, rows[1])
	frame.Paragraph{
		Lines: []frame.Line{frame.Raw("Page not found!")},
		Align: frame.AlignCenter,
	}.Render(f, rows[2])
}
