package seqtree

import (
	"fmt"
	"iter"
	"slices"
)

var _ Hider[int] = (*EagerHideList[int])(nil)

type eagerItem[V comparable] struct {
	value   V
	visible bool
	vpos    int // visible position; for hidden items the one of the next visible item
}

// EagerHideList implements Hider on slices. Positions are maintained
// eagerly, which makes lookups constant-time but edits linear in the
// length of the list.
//
// EagerHideList is meant for small lists and as a reference for HideList.
type EagerHideList[V comparable] struct {
	items   []eagerItem[V]
	visible []V
	pos     map[V]int // absolute positions
}

// NewEagerHideList creates an empty list.
func NewEagerHideList[V comparable]() *EagerHideList[V] {
	return &EagerHideList[V]{pos: make(map[V]int)}
}

// Len returns the number of visible items.
func (l *EagerHideList[V]) Len() int { return len(l.visible) }

// TotalLen returns the number of items, including hidden ones.
func (l *EagerHideList[V]) TotalLen() int { return len(l.items) }

// Get returns the visible item at visible position i.
func (l *EagerHideList[V]) Get(i int) (V, error) {
	if i < 0 || i >= len(l.visible) {
		var zero V
		return zero, outOfRange(i, len(l.visible))
	}
	return l.visible[i], nil
}

// GetAll returns the item at absolute position i.
func (l *EagerHideList[V]) GetAll(i int) (V, error) {
	if i < 0 || i >= len(l.items) {
		var zero V
		return zero, outOfRange(i, len(l.items))
	}
	return l.items[i].value, nil
}

// Slice returns the visible items at visible positions start ≤ i < stop.
func (l *EagerHideList[V]) Slice(start, stop int) ([]V, error) {
	if start < 0 || stop > len(l.visible) || start > stop {
		return nil, fmt.Errorf("%w: [%d, %d) not within [0, %d)", ErrIndexOutOfRange, start, stop, len(l.visible))
	}
	return slices.Clone(l.visible[start:stop]), nil
}

// SliceAll returns the items at absolute positions start ≤ i < stop.
func (l *EagerHideList[V]) SliceAll(start, stop int) ([]V, error) {
	if start < 0 || stop > len(l.items) || start > stop {
		return nil, fmt.Errorf("%w: [%d, %d) not within [0, %d)", ErrIndexOutOfRange, start, stop, len(l.items))
	}
	out := make([]V, 0, stop-start)
	for _, item := range l.items[start:stop] {
		out = append(out, item.value)
	}
	return out, nil
}

// Hide hides n visible items, starting at visible position pos.
func (l *EagerHideList[V]) Hide(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > len(l.visible) {
		return fmt.Errorf("%w: cannot hide %d items at %d (length %d)", ErrIndexOutOfRange, n, pos, len(l.visible))
	}
	if n == 0 {
		return nil
	}
	first, last := l.pos[l.visible[pos]], l.pos[l.visible[pos+n-1]]
	for i := first; i <= last; i++ {
		l.items[i].visible = false
		l.items[i].vpos = pos
	}
	for i := last + 1; i < len(l.items); i++ {
		l.items[i].vpos -= n
	}
	l.visible = slices.Delete(l.visible, pos, pos+n)
	return nil
}

// HideItem hides the item v. It returns false if v has been hidden before.
func (l *EagerHideList[V]) HideItem(v V) (bool, error) {
	i, ok := l.pos[v]
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	if !l.items[i].visible {
		return false, nil
	}
	return true, l.Hide(l.items[i].vpos, 1)
}

// IsVisible reports whether the item at absolute position i is visible.
func (l *EagerHideList[V]) IsVisible(i int) (bool, error) {
	if i < 0 || i >= len(l.items) {
		return false, outOfRange(i, len(l.items))
	}
	return l.items[i].visible, nil
}

// IsVisibleItem reports whether item v is visible.
func (l *EagerHideList[V]) IsVisibleItem(v V) (bool, error) {
	i, ok := l.pos[v]
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	return l.items[i].visible, nil
}

// InsertSequenceAll inserts seq at absolute position pos.
func (l *EagerHideList[V]) InsertSequenceAll(pos int, seq []V, visible []bool) error {
	if pos < 0 || pos > len(l.items) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, pos, len(l.items))
	}
	if err := l.checkInsert(seq, visible); err != nil {
		return err
	}
	l.insertAt(pos, seq, visible)
	return nil
}

// InsertSequenceLeftOf inserts seq directly left of target.
func (l *EagerHideList[V]) InsertSequenceLeftOf(target V, seq []V, visible []bool) error {
	pos, ok := l.pos[target]
	if !ok {
		return fmt.Errorf("%w: %v", ErrValueNotFound, target)
	}
	if err := l.checkInsert(seq, visible); err != nil {
		return err
	}
	l.insertAt(pos, seq, visible)
	return nil
}

func (l *EagerHideList[V]) checkInsert(seq []V, visible []bool) error {
	if len(seq) != len(visible) {
		return fmt.Errorf("%w: %d items, but %d visibility flags", ErrIllegalArguments, len(seq), len(visible))
	}
	seen := make(map[V]struct{}, len(seq))
	for _, v := range seq {
		if _, ok := l.pos[v]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateValue, v)
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: %v occurs twice in sequence", ErrDuplicateValue, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func (l *EagerHideList[V]) insertAt(pos int, seq []V, visible []bool) {
	vstart := len(l.visible)
	if pos < len(l.items) {
		vstart = l.items[pos].vpos
	}
	fresh := make([]eagerItem[V], len(seq))
	var shown []V
	for i, v := range seq {
		fresh[i] = eagerItem[V]{value: v, visible: visible[i], vpos: vstart + len(shown)}
		if visible[i] {
			shown = append(shown, v)
		}
	}
	l.items = slices.Insert(l.items, pos, fresh...)
	for i := pos + len(seq); i < len(l.items); i++ {
		l.items[i].vpos += len(shown)
	}
	for i := pos; i < len(l.items); i++ {
		l.pos[l.items[i].value] = i
	}
	l.visible = slices.Insert(l.visible, vstart, shown...)
}

// Index returns the visible position of v, see HideList.Index.
func (l *EagerHideList[V]) Index(v V) (int, error) {
	i, ok := l.pos[v]
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	return l.items[i].vpos, nil
}

// IndexAll returns the absolute position of v.
func (l *EagerHideList[V]) IndexAll(v V) (int, error) {
	i, ok := l.pos[v]
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	return i, nil
}

// Contains reports whether v is in the list, hidden or not.
func (l *EagerHideList[V]) Contains(v V) bool {
	_, ok := l.pos[v]
	return ok
}

// Values returns an iterator over the visible items.
func (l *EagerHideList[V]) Values() iter.Seq[V] {
	return slices.Values(l.visible)
}

// All returns an iterator over all items together with their visibility.
func (l *EagerHideList[V]) All() iter.Seq2[V, bool] {
	return func(yield func(V, bool) bool) {
		for _, item := range l.items {
			if !yield(item.value, item.visible) {
				return
			}
		}
	}
}
