package state

// StatefulList is a list with an optional selected index. Navigation
// wraps at both ends and is a no-op on an empty list.
type StatefulList[T any] struct {
	Items    []T
	selected int
}

// NewStatefulList returns a list with nothing selected.
func NewStatefulList[T any](items []T) StatefulList[T] {
	return StatefulList[T]{Items: items, selected: -1}
}

// Len returns the number of items.
func (l *StatefulList[T]) Len() int { return len(l.Items) }

// Selected returns the selected index.
func (l *StatefulList[T]) Selected() (int, bool) {
	if l.selected < 0 || l.selected >= len(l.Items) {
		return 0, false
	}
	return l.selected, true
}

// SelectedItem returns the selected item.
func (l *StatefulList[T]) SelectedItem() (T, bool) {
	i, ok := l.Selected()
	if !ok {
		var zero T
		return zero, false
	}
	return l.Items[i], true
}

// Select selects index i. An out of range i clears the selection.
func (l *StatefulList[T]) Select(i int) {
	if i < 0 || i >= len(l.Items) {
		l.selected = -1
		return
	}
	l.selected = i
}

func (l *StatefulList[T]) Unselect() { l.selected = -1 }

// SetItems replaces the items and clears the selection.
func (l *StatefulList[T]) SetItems(items []T) {
	l.Items = items
	l.selected = -1
}

// Push appends an item, keeping the selection.
func (l *StatefulList[T]) Push(item T) {
	l.Items = append(l.Items, item)
}

// Next selects the following item, wrapping to the first.
func (l *StatefulList[T]) Next() {
	if len(l.Items) == 0 {
		return
	}
	i, ok := l.Selected()
	if !ok {
		l.selected = 0
		return
	}
	l.selected = (i + 1) % len(l.Items)
}

// Previous selects the preceding item, wrapping to the last.
func (l *StatefulList[T]) Previous() {
	if len(l.Items) == 0 {
		return
	}
	i, ok := l.Selected()
	if !ok {
		l.selected = 0
		return
	}
	l.selected = (i - 1 + len(l.Items)) % len(l.Items)
}
