package aatree

import (
	"fmt"
	"math/rand"
)

// Direction is the decision of a walker at a node.
type Direction int8

const (
	Left  Direction = -1 // target is in the left subtree
	Here  Direction = 0  // target is this node
	Right Direction = 1  // target is in the right subtree
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Here:
		return "here"
	case Right:
		return "right"
	}
	return fmt.Sprintf("<bad direction: %d>", int8(d))
}

// Walker walks up and down trees according to a specific objective, typically
// to find a leaf at a given position or with a given key.
//
// Descend evaluates a node and tells Descend (the function) where to go next.
// It must depend on nothing but the walker's state and the node's annotation
// and value.
//
// Ascend is called for every node on the way from a start node up to the
// root. It returns true to continue with the parent. It should accumulate
// state such that a subsequent descent would retrace these steps.
//
// Preparing a walker for a walk is specific to each walker type, as are the
// arguments needed. Walkers therefore offer PrepareDescend and PrepareAscend
// methods of their own.
type Walker[A, V any] interface {
	Descend(node *Node[A, V]) Direction
	Ascend(node *Node[A, V]) bool
}

// --- Counting ---------------------------------------------------------------

// SumWalker walks trees with leaves annotated 1 and annotations summed up.
// The target is the zero-based position of a leaf.
//
// There is one exception to the leaf annotations: the rightmost leaf of a
// tree may be an empty sentinel with annotation 0. Descending to position
// n in a tree of n items will end left of the sentinel.
//
// The fields of a SumWalker are public API. After an ascent, Target holds
// the position of the leaf the ascent started from.
type SumWalker[V any] struct {
	Target int
	Offset int
}

// PrepareDescend resets the walker to search for position target.
func (w *SumWalker[V]) PrepareDescend(target int) {
	w.Target = target
	w.Offset = 0
}

// Descend is part of interface Walker.
func (w *SumWalker[V]) Descend(node *Node[int, V]) Direction {
	if node.IsLeaf() {
		if node.ann == 0 { // empty leaf at the last position
			return Left
		}
		return Here
	}
	p := w.Offset + node.left.ann
	if p <= w.Target {
		w.Offset = p
		return Right
	}
	return Left
}

// PrepareAscend resets the walker for an ascent.
func (w *SumWalker[V]) PrepareAscend() {
	w.Target = 0
}

// Ascend is part of interface Walker.
func (w *SumWalker[V]) Ascend(node *Node[int, V]) bool {
	if node.parent == nil {
		return false
	}
	if node.parent.right == node {
		w.Target += node.parent.left.ann
	}
	return true
}

// Counts is a pair of counters, indexed by a channel.
type Counts [2]int

// Channels of Counts.
const (
	Visible = 0 // count of visible items
	Total   = 1 // count of all items, including hidden ones
)

// MultiSumWalker is a SumWalker for annotations with more than one counter.
// Channel selects the counter to navigate by. As with SumWalker, an
// all-zero leaf is treated as the empty sentinel at the last position.
type MultiSumWalker[V any] struct {
	Channel int
	Target  int
	Offset  int
}

// PrepareDescend resets the walker to search for position target, counted in
// channel ch.
func (w *MultiSumWalker[V]) PrepareDescend(target int, ch int) {
	w.Channel = ch
	w.Target = target
	w.Offset = 0
}

// Descend is part of interface Walker.
func (w *MultiSumWalker[V]) Descend(node *Node[Counts, V]) Direction {
	if node.IsLeaf() {
		if node.ann == (Counts{}) {
			return Left
		}
		return Here
	}
	p := w.Offset + node.left.ann[w.Channel]
	if p <= w.Target {
		w.Offset = p
		return Right
	}
	return Left
}

// PrepareAscend resets the walker for an ascent, counting in channel ch.
func (w *MultiSumWalker[V]) PrepareAscend(ch int) {
	w.Channel = ch
	w.Target = 0
}

// Ascend is part of interface Walker.
func (w *MultiSumWalker[V]) Ascend(node *Node[Counts, V]) bool {
	if node.parent == nil {
		return false
	}
	if node.parent.right == node {
		w.Target += node.parent.left.ann[w.Channel]
	}
	return true
}

// --- Searching --------------------------------------------------------------

// SearchWalker searches a sorted tree for a key. Leaves are annotated with
// their keys, and the annotation of an internal node must be the greatest
// key in its subtree, i.e. the monoid operation is max-like:
//
//	leftchild.annotation <= key of any leaf in the right subtree
//
// Descending for a key not present ends at the leaf next to which it would
// have to be inserted. Duplicate keys are found leftmost-first.
type SearchWalker[A, V any] struct {
	Key     A
	Compare func(a, b A) int
}

// PrepareDescend sets the search key and the key ordering.
func (w *SearchWalker[A, V]) PrepareDescend(key A, compare func(a, b A) int) {
	w.Key = key
	w.Compare = compare
}

// Descend is part of interface Walker.
func (w *SearchWalker[A, V]) Descend(node *Node[A, V]) Direction {
	if node.IsLeaf() {
		switch c := w.Compare(w.Key, node.ann); {
		case c < 0:
			return Left
		case c > 0:
			return Right
		}
		return Here
	}
	if w.Compare(w.Key, node.left.ann) <= 0 {
		return Left
	}
	return Right
}

// Ascend is part of interface Walker. It records the node's annotation as
// key and stops.
func (w *SearchWalker[A, V]) Ascend(node *Node[A, V]) bool {
	w.Key = node.ann
	return false
}

// --- Random walks -----------------------------------------------------------

// RandomWalker selects a random leaf position. Ascending is not supported.
type RandomWalker[A, V any] struct {
	Rand *rand.Rand
}

// PrepareDescend sets the source of randomness. If r is nil, the global
// source is used.
func (w *RandomWalker[A, V]) PrepareDescend(r *rand.Rand) {
	w.Rand = r
}

// Descend is part of interface Walker.
func (w *RandomWalker[A, V]) Descend(*Node[A, V]) Direction {
	var n int
	if w.Rand == nil {
		n = rand.Intn(2)
	} else {
		n = w.Rand.Intn(2)
	}
	if n == 0 {
		return Left
	}
	return Right
}

// Ascend is part of interface Walker. It stops immediately.
func (w *RandomWalker[A, V]) Ascend(*Node[A, V]) bool {
	return false
}

// --- Monoids ----------------------------------------------------------------

// SumMonoid adds integers.
type SumMonoid struct{}

// Zero returns 0.
func (SumMonoid) Zero() int { return 0 }

// Add returns left + right.
func (SumMonoid) Add(left, right int) int { return left + right }

// CountsMonoid adds Counts pairwise.
type CountsMonoid struct{}

// Zero returns a pair of zero counts.
func (CountsMonoid) Zero() Counts { return Counts{} }

// Add adds counts channel by channel.
func (CountsMonoid) Add(left, right Counts) Counts {
	return Counts{left[0] + right[0], left[1] + right[1]}
}
