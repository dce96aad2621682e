// Package layout holds terminal geometry: rectangles and a constraint
// based splitter that divides an area into rows or columns.
package layout

// Rect represents a rectangle with integer cell coordinates.
// X and Y are the top-left corner; Width and Height are dimensions.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every edge. The result never
// has negative dimensions.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X:      r.X + n,
		Y:      r.Y + n,
		Width:  max(0, r.Width-2*n),
		Height: max(0, r.Height-2*n),
	}
}

// Intersect returns the overlap of two rectangles, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= x || bottom <= y {
		return Rect{}
	}
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Rows splits the rectangle into one-line rects from the top, at most n.
func (r Rect) Rows(n int) []Rect {
	n = min(n, max(0, r.Height))
	rows := make([]Rect, n)
	for i := range rows {
		rows[i] = Rect{X: r.X, Y: r.Y + i, Width: r.Width, Height: 1}
	}
	return rows
}

// Centered returns a rect of the given percentages of r, centered in it.
func Centered(r Rect, percentX, percentY int) Rect {
	w := r.Width * percentX / 100
	h := r.Height * percentY / 100
	return Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}
