package seqtree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/seqtree/aatree"
)

type listNode[V comparable] = aatree.Node[int, V]

// List is a sequence of values with logarithmic positional access.
//
// Every leaf of the underlying tree holds one item and is annotated with 1,
// internal nodes count the items below them. The rightmost leaf is the
// tree's sentinel, annotated with 0; it never holds an item.
//
// Values may occur more than once. Index reports the position of one of the
// occurrences, it is unspecified which.
//
// A List is not safe for concurrent use.
type List[V comparable] struct {
	tree   *aatree.Tree[int, V]
	walker aatree.SumWalker[V]
	index  map[V]map[*listNode[V]]struct{}
}

// NewList creates an empty list.
func NewList[V comparable]() *List[V] {
	tree, err := aatree.New[int, V](aatree.Config[int]{
		Monoid:    aatree.SumMonoid{},
		Balancing: aatree.AA,
		Equal:     func(a, b int) bool { return a == b },
	})
	assert(err == nil, "cannot create counting tree")
	return &List[V]{
		tree:  tree,
		index: make(map[V]map[*listNode[V]]struct{}),
	}
}

// Len returns the number of items in the list.
func (l *List[V]) Len() int {
	return l.tree.Annotation()
}

// Get returns the item at position i.
func (l *List[V]) Get(i int) (V, error) {
	if i < 0 || i >= l.Len() {
		var zero V
		return zero, outOfRange(i, l.Len())
	}
	return l.nodeAt(i).Value(), nil
}

// Set replaces the item at position i. The leaf holding the old item is
// dropped from the tree and a new one takes its place.
func (l *List[V]) Set(i int, v V) error {
	if i < 0 || i >= l.Len() {
		return outOfRange(i, l.Len())
	}
	node := l.nodeAt(i)
	leaf := aatree.NewLeaf(1, v)
	l.tree.AddLeft(leaf, node)
	l.unlink(node)
	l.tree.Remove(node)
	l.link(leaf)
	return nil
}

// Delete removes the item at position i. Items right of i move one position
// to the left.
func (l *List[V]) Delete(i int) error {
	if i < 0 || i >= l.Len() {
		return outOfRange(i, l.Len())
	}
	node := l.nodeAt(i)
	tracer().Debugf("list: delete %v at %d", node.Value(), i)
	l.unlink(node)
	l.tree.Remove(node)
	return nil
}

// Insert inserts v at position i, with 0 ≤ i ≤ Len(). Inserting at Len()
// appends to the list.
func (l *List[V]) Insert(i int, v V) error {
	if i < 0 || i > l.Len() {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, l.Len())
	}
	node := aatree.NewLeaf(1, v)
	l.walker.PrepareDescend(i)
	l.tree.Add(node, &l.walker)
	l.link(node)
	return nil
}

// Append adds v at the end of the list.
func (l *List[V]) Append(v V) {
	_ = l.Insert(l.Len(), v)
}

// Index returns the position of v in the list.
func (l *List[V]) Index(v V) (int, error) {
	for node := range l.index[v] {
		l.walker.PrepareAscend()
		aatree.Ascend(node, &l.walker)
		return l.walker.Target, nil
	}
	return -1, fmt.Errorf("%w: %v", ErrValueNotFound, v)
}

// Values returns an iterator over the items in order.
func (l *List[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for node := range l.tree.Leaves() {
			if node.Annotation() == 0 { // sentinel
				return
			}
			if !yield(node.Value()) {
				return
			}
		}
	}
}

// Check tests the internal consistency of a list. It is intended for tests
// and debugging and runs in linear time.
func (l *List[V]) Check() error {
	if err := l.tree.Check(); err != nil {
		return err
	}
	if err := l.tree.CheckAnnotations(func(a, b int) bool { return a == b }); err != nil {
		return err
	}
	if l.tree.Last().Annotation() != 0 {
		return fmt.Errorf("%w: sentinel is not the last leaf", aatree.ErrInvariant)
	}
	indexed := 0
	for v, nodes := range l.index {
		for node := range nodes {
			if node.Value() != v || !node.IsLeaf() {
				return fmt.Errorf("%w: index entry for %v is stale", aatree.ErrInvariant, v)
			}
			indexed++
		}
	}
	if indexed != l.Len() || l.tree.LeafCount() != l.Len()+1 {
		return fmt.Errorf("%w: %d items indexed, %d leaves, length %d",
			aatree.ErrInvariant, indexed, l.tree.LeafCount(), l.Len())
	}
	return nil
}

// Tree gives access to the underlying tree, e.g. for visualization.
// Clients must not modify it.
func (l *List[V]) Tree() *aatree.Tree[int, V] {
	return l.tree
}

func (l *List[V]) nodeAt(i int) *listNode[V] {
	l.walker.PrepareDescend(i)
	node, d := aatree.Descend(l.tree.Root(), &l.walker)
	assert(d == aatree.Here, "position lookup did not end at an item")
	return node
}

func (l *List[V]) link(node *listNode[V]) {
	nodes, ok := l.index[node.Value()]
	if !ok {
		nodes = make(map[*listNode[V]]struct{})
		l.index[node.Value()] = nodes
	}
	nodes[node] = struct{}{}
}

func (l *List[V]) unlink(node *listNode[V]) {
	v := node.Value()
	delete(l.index[v], node)
	if len(l.index[v]) == 0 {
		delete(l.index, v)
	}
}
