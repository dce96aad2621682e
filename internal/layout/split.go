package layout

// Direction is the axis a Layout splits along.
type Direction int

const (
	DirVertical Direction = iota
	DirHorizontal
)

// Flex places the leftover space when no constraint absorbs it.
type Flex int

const (
	FlexStart Flex = iota
	FlexCenter
	FlexEnd
)

type constraintKind int

const (
	kindLength constraintKind = iota
	kindPercentage
	kindFill
	kindMin
	kindMax
)

// Constraint sizes one segment of a split.
type Constraint struct {
	kind  constraintKind
	value int
}

// Length is exactly n cells.
func Length(n int) Constraint { return Constraint{kindLength, n} }

// Percentage is p percent of the available space, rounded down.
func Percentage(p int) Constraint { return Constraint{kindPercentage, p} }

// Fill takes leftover space in proportion to weight.
func Fill(weight int) Constraint { return Constraint{kindFill, max(1, weight)} }

// Min is at least n cells and grows when nothing else fills.
func Min(n int) Constraint { return Constraint{kindMin, n} }

// Max is at most n cells.
func Max(n int) Constraint { return Constraint{kindMax, n} }

// Layout divides an area along one axis.
type Layout struct {
	Direction   Direction
	Constraints []Constraint
	Margin      int
	Spacing     int
	Flex        Flex
}

// Horizontal builds a left-to-right layout.
func Horizontal(cs ...Constraint) Layout {
	return Layout{Direction: DirHorizontal, Constraints: cs}
}

// VerticalLayout builds a top-to-bottom layout.
func VerticalLayout(cs ...Constraint) Layout {
	return Layout{Direction: DirVertical, Constraints: cs}
}

func (l Layout) WithMargin(n int) Layout  { l.Margin = n; return l }
func (l Layout) WithSpacing(n int) Layout { l.Spacing = n; return l }
func (l Layout) WithFlex(f Flex) Layout   { l.Flex = f; return l }

// Split returns one rect per constraint. Overflow is taken from the last
// segments first; leftover space goes to Fill segments by weight, then to
// Min segments, then is placed according to Flex.
func (l Layout) Split(area Rect) []Rect {
	n := len(l.Constraints)
	if n == 0 {
		return nil
	}
	inner := area.Inset(l.Margin)

	total := inner.Height
	if l.Direction == DirHorizontal {
		total = inner.Width
	}
	total = max(0, total-l.Spacing*(n-1))

	sizes := make([]int, n)
	used := 0
	for i, c := range l.Constraints {
		switch c.kind {
		case kindLength, kindMin:
			sizes[i] = c.value
		case kindPercentage:
			sizes[i] = total * c.value / 100
		case kindMax:
			sizes[i] = min(c.value, total)
		}
		used += sizes[i]
	}

	if used > total {
		over := used - total
		for i := n - 1; i >= 0 && over > 0; i-- {
			cut := min(sizes[i], over)
			sizes[i] -= cut
			over -= cut
		}
		used = total
	}

	rest := total - used
	if rest > 0 {
		rest = distribute(sizes, l.Constraints, kindFill, rest)
	}
	if rest > 0 {
		rest = distribute(sizes, l.Constraints, kindMin, rest)
	}

	offset := 0
	switch l.Flex {
	case FlexCenter:
		offset = rest / 2
	case FlexEnd:
		offset = rest
	}

	rects := make([]Rect, n)
	pos := offset
	for i, size := range sizes {
		if l.Direction == DirHorizontal {
			rects[i] = Rect{X: inner.X + pos, Y: inner.Y, Width: size, Height: inner.Height}
		} else {
			rects[i] = Rect{X: inner.X, Y: inner.Y + pos, Width: inner.Width, Height: size}
		}
		pos += size + l.Spacing
	}
	return rects
}

// distribute hands rest to every constraint of kind, weighted by value for
// Fill and evenly for Min. The last receiver takes the rounding remainder.
func distribute(sizes []int, cs []Constraint, kind constraintKind, rest int) int {
	weights := 0
	last := -1
	for i, c := range cs {
		if c.kind != kind {
			continue
		}
		if kind == kindFill {
			weights += c.value
		} else {
			weights++
		}
		last = i
	}
	if last < 0 {
		return rest
	}

	given := 0
	for i, c := range cs {
		if c.kind != kind {
			continue
		}
		w := 1
		if kind == kindFill {
			w = c.value
		}
		share := rest * w / weights
		if i == last {
			share = rest - given
		}
		sizes[i] += share
		given += share
	}
	return 0
}
