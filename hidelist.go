package seqtree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/seqtree/aatree"
)

// Hider is the interface of sequences with hidden items (tombstones).
//
// Positions come in two flavours: visible positions count visible items only,
// absolute positions ("all") count every item, hidden or not. Values are
// identities and occur at most once in a sequence. Hidden items stay hidden.
type Hider[V comparable] interface {
	Len() int
	TotalLen() int
	Get(i int) (V, error)
	GetAll(i int) (V, error)
	Slice(start, stop int) ([]V, error)
	SliceAll(start, stop int) ([]V, error)
	Hide(pos, n int) error
	HideItem(v V) (bool, error)
	IsVisible(i int) (bool, error)
	IsVisibleItem(v V) (bool, error)
	InsertSequenceAll(pos int, seq []V, visible []bool) error
	InsertSequenceLeftOf(target V, seq []V, visible []bool) error
	Index(v V) (int, error)
	IndexAll(v V) (int, error)
	Contains(v V) bool
	Values() iter.Seq[V]
	All() iter.Seq2[V, bool]
}

var _ Hider[int] = (*HideList[int])(nil)

type hideNode[V comparable] = aatree.Node[aatree.Counts, V]

var (
	shown  = aatree.Counts{1, 1}
	hidden = aatree.Counts{0, 1}
)

// isHidden is used as a skip predicate for tree navigation: a subtree
// without visible items is entirely hidden.
func isHidden[V comparable](n *hideNode[V]) bool {
	return n.Annotation()[aatree.Visible] == 0
}

// HideList is a sequence of unique values, some of which may be hidden.
// Every operation is logarithmic in the total number of items, except for
// the ones producing a result of a given length.
//
// Leaves of the underlying tree carry a pair of counters, (1,1) for visible
// items and (0,1) for hidden ones. The rightmost leaf is a (0,0) sentinel.
//
// A HideList is not safe for concurrent use.
type HideList[V comparable] struct {
	tree   *aatree.Tree[aatree.Counts, V]
	walker aatree.MultiSumWalker[V]
	index  map[V]*hideNode[V]
}

// NewHideList creates an empty hide list.
func NewHideList[V comparable]() *HideList[V] {
	tree, err := aatree.New[aatree.Counts, V](aatree.Config[aatree.Counts]{
		Monoid:    aatree.CountsMonoid{},
		Balancing: aatree.AA,
		Equal:     func(a, b aatree.Counts) bool { return a == b },
	})
	assert(err == nil, "cannot create counting tree")
	return &HideList[V]{
		tree:  tree,
		index: make(map[V]*hideNode[V]),
	}
}

// Len returns the number of visible items.
func (l *HideList[V]) Len() int {
	return l.tree.Annotation()[aatree.Visible]
}

// TotalLen returns the number of items, including hidden ones.
func (l *HideList[V]) TotalLen() int {
	return l.tree.Annotation()[aatree.Total]
}

// Get returns the visible item at visible position i.
func (l *HideList[V]) Get(i int) (V, error) {
	if i < 0 || i >= l.Len() {
		var zero V
		return zero, outOfRange(i, l.Len())
	}
	return l.nodeAt(i, aatree.Visible).Value(), nil
}

// GetAll returns the item at absolute position i, whether hidden or not.
func (l *HideList[V]) GetAll(i int) (V, error) {
	if i < 0 || i >= l.TotalLen() {
		var zero V
		return zero, outOfRange(i, l.TotalLen())
	}
	return l.nodeAt(i, aatree.Total).Value(), nil
}

// Slice returns the visible items at visible positions start ≤ i < stop.
func (l *HideList[V]) Slice(start, stop int) ([]V, error) {
	return l.slice(start, stop, aatree.Visible)
}

// SliceAll returns the items at absolute positions start ≤ i < stop.
func (l *HideList[V]) SliceAll(start, stop int) ([]V, error) {
	return l.slice(start, stop, aatree.Total)
}

func (l *HideList[V]) slice(start, stop int, ch int) ([]V, error) {
	length := l.TotalLen()
	var skip func(*hideNode[V]) bool
	if ch == aatree.Visible {
		length = l.Len()
		skip = isHidden[V]
	}
	if start < 0 || stop > length || start > stop {
		return nil, fmt.Errorf("%w: [%d, %d) not within [0, %d)", ErrIndexOutOfRange, start, stop, length)
	}
	out := make([]V, 0, stop-start)
	if start == stop {
		return out, nil
	}
	node, ok := l.nodeAt(start, ch), true
	for {
		out = append(out, node.Value())
		if len(out) == stop-start {
			return out, nil
		}
		node, ok = l.tree.Next(node, skip)
		assert(ok, "slice runs past the end of the list")
	}
}

// Hide hides n visible items, starting at visible position pos. Items already
// hidden between them are not affected.
func (l *HideList[V]) Hide(pos, n int) error {
	if pos < 0 || n < 0 || pos+n > l.Len() {
		return fmt.Errorf("%w: cannot hide %d items at %d (length %d)", ErrIndexOutOfRange, n, pos, l.Len())
	}
	if n == 0 {
		return nil
	}
	tracer().Debugf("hidelist: hide %d items at %d", n, pos)
	node := l.nodeAt(pos, aatree.Visible)
	for k := 0; ; k++ {
		// find the successor before the change, as hiding makes node skippable
		next, ok := l.tree.Next(node, isHidden[V])
		l.tree.ChangeAnnotation(node, hidden)
		if k == n-1 {
			return nil
		}
		assert(ok, "ran out of visible items while hiding")
		node = next
	}
}

// HideItem hides the item v. It returns false if v has been hidden before.
func (l *HideList[V]) HideItem(v V) (bool, error) {
	node, ok := l.index[v]
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	if isHidden(node) {
		return false, nil
	}
	l.tree.ChangeAnnotation(node, hidden)
	return true, nil
}

// IsVisible reports whether the item at absolute position i is visible.
func (l *HideList[V]) IsVisible(i int) (bool, error) {
	if i < 0 || i >= l.TotalLen() {
		return false, outOfRange(i, l.TotalLen())
	}
	return !isHidden(l.nodeAt(i, aatree.Total)), nil
}

// IsVisibleItem reports whether item v is visible.
func (l *HideList[V]) IsVisibleItem(v V) (bool, error) {
	node, ok := l.index[v]
	if !ok {
		return false, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	return !isHidden(node), nil
}

// InsertSequenceAll inserts the items of seq such that the first of them
// ends up at absolute position pos, with 0 ≤ pos ≤ TotalLen().
// visible[i] tells whether seq[i] starts out visible.
//
// No item of seq may already be in the list, nor occur in seq twice.
// If any argument is invalid, the list is left unchanged.
func (l *HideList[V]) InsertSequenceAll(pos int, seq []V, visible []bool) error {
	if pos < 0 || pos > l.TotalLen() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, pos, l.TotalLen())
	}
	if err := l.checkInsert(seq, visible); err != nil {
		return err
	}
	var anchor *hideNode[V]
	if pos == l.TotalLen() {
		anchor = l.tree.Last()
	} else {
		anchor = l.nodeAt(pos, aatree.Total)
	}
	l.insertLeftOf(anchor, seq, visible)
	return nil
}

// InsertSequenceLeftOf inserts the items of seq directly left of target,
// which may be hidden. See InsertSequenceAll for the restrictions.
func (l *HideList[V]) InsertSequenceLeftOf(target V, seq []V, visible []bool) error {
	anchor, ok := l.index[target]
	if !ok {
		return fmt.Errorf("%w: %v", ErrValueNotFound, target)
	}
	if err := l.checkInsert(seq, visible); err != nil {
		return err
	}
	l.insertLeftOf(anchor, seq, visible)
	return nil
}

func (l *HideList[V]) checkInsert(seq []V, visible []bool) error {
	if len(seq) != len(visible) {
		return fmt.Errorf("%w: %d items, but %d visibility flags", ErrIllegalArguments, len(seq), len(visible))
	}
	seen := make(map[V]struct{}, len(seq))
	for _, v := range seq {
		if _, ok := l.index[v]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateValue, v)
		}
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: %v occurs twice in sequence", ErrDuplicateValue, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// insertLeftOf adds every item directly left of anchor, which keeps them in
// order.
func (l *HideList[V]) insertLeftOf(anchor *hideNode[V], seq []V, visible []bool) {
	tracer().Debugf("hidelist: insert %d items", len(seq))
	for i, v := range seq {
		ann := hidden
		if visible[i] {
			ann = shown
		}
		node := aatree.NewLeaf(ann, v)
		l.tree.AddLeft(node, anchor)
		l.index[v] = node
	}
}

// Index returns the visible position of v. For a hidden item this is the
// position of the next visible item (or Len(), if there is none).
func (l *HideList[V]) Index(v V) (int, error) {
	return l.position(v, aatree.Visible)
}

// IndexAll returns the absolute position of v.
func (l *HideList[V]) IndexAll(v V) (int, error) {
	return l.position(v, aatree.Total)
}

func (l *HideList[V]) position(v V, ch int) (int, error) {
	node, ok := l.index[v]
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrValueNotFound, v)
	}
	l.walker.PrepareAscend(ch)
	aatree.Ascend(node, &l.walker)
	return l.walker.Target, nil
}

// Contains reports whether v is in the list, hidden or not.
func (l *HideList[V]) Contains(v V) bool {
	_, ok := l.index[v]
	return ok
}

// Values returns an iterator over the visible items. Runs of hidden items
// are skipped without visiting them one by one.
func (l *HideList[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		node, ok := l.tree.First(), true
		if isHidden(node) {
			node, ok = l.tree.Next(node, isHidden[V])
		}
		for ; ok; node, ok = l.tree.Next(node, isHidden[V]) {
			if !yield(node.Value()) {
				return
			}
		}
	}
}

// All returns an iterator over all items together with their visibility.
func (l *HideList[V]) All() iter.Seq2[V, bool] {
	return func(yield func(V, bool) bool) {
		for node := range l.tree.Leaves() {
			if node.Annotation() == (aatree.Counts{}) { // sentinel
				return
			}
			if !yield(node.Value(), !isHidden(node)) {
				return
			}
		}
	}
}

// Check tests the internal consistency of a hide list. It is intended for
// tests and debugging and runs in linear time.
func (l *HideList[V]) Check() error {
	if err := l.tree.Check(); err != nil {
		return err
	}
	if err := l.tree.CheckAnnotations(func(a, b aatree.Counts) bool { return a == b }); err != nil {
		return err
	}
	if l.tree.Last().Annotation() != (aatree.Counts{}) {
		return fmt.Errorf("%w: sentinel is not the last leaf", aatree.ErrInvariant)
	}
	for v, node := range l.index {
		if node.Value() != v || !node.IsLeaf() {
			return fmt.Errorf("%w: index entry for %v is stale", aatree.ErrInvariant, v)
		}
		if a := node.Annotation(); a != shown && a != hidden {
			return fmt.Errorf("%w: item %v annotated %v", aatree.ErrInvariant, v, a)
		}
	}
	if len(l.index) != l.TotalLen() || l.tree.LeafCount() != l.TotalLen()+1 {
		return fmt.Errorf("%w: %d items indexed, %d leaves, length %d",
			aatree.ErrInvariant, len(l.index), l.tree.LeafCount(), l.TotalLen())
	}
	return nil
}

// Tree gives access to the underlying tree, e.g. for visualization.
// Clients must not modify it.
func (l *HideList[V]) Tree() *aatree.Tree[aatree.Counts, V] {
	return l.tree
}

func (l *HideList[V]) nodeAt(i int, ch int) *hideNode[V] {
	l.walker.PrepareDescend(i, ch)
	node, d := aatree.Descend(l.tree.Root(), &l.walker)
	assert(d == aatree.Here, "position lookup did not end at an item")
	return node
}
