package aatree

import (
	"iter"
)

// Tree is a binary tree with monoid annotations.
//
// A is the annotation type, V is the type of client values attached to
// leaves. The annotation of an internal node is always the monoid sum of
// the annotations of its children, the annotations of leaves are set by
// clients. Every node has either two children or none.
//
// A tree always contains at least one leaf. New trees start with a sentinel
// leaf annotated with the monoid's neutral element, which clients may use as
// an end-of-sequence marker.
//
// Trees are not safe for concurrent mutation; clients have to serialize all
// calls.
type Tree[A, V any] struct {
	cfg    Config[A]
	root   *Node[A, V]
	leaves int
}

// New creates a tree consisting of a single sentinel leaf.
func New[A, V any](cfg Config[A]) (*Tree[A, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	var zero V
	tracer().Debugf("aatree: new %s tree", cfg.Balancing)
	return &Tree[A, V]{
		cfg:    cfg,
		root:   NewLeaf(cfg.Monoid.Zero(), zero),
		leaves: 1,
	}, nil
}

// Config returns a copy of the tree's configuration.
func (t *Tree[A, V]) Config() Config[A] {
	return t.cfg
}

// Root returns the root node of the tree.
func (t *Tree[A, V]) Root() *Node[A, V] {
	return t.root
}

// Annotation returns the annotation of the root, i.e. the monoid sum over all
// leaves.
func (t *Tree[A, V]) Annotation() A {
	return t.root.ann
}

// LeafCount returns the number of leaves in the tree, including the sentinel.
func (t *Tree[A, V]) LeafCount() int {
	return t.leaves
}

// Height returns the number of nodes on the longest path from the root to a
// leaf. A tree consisting of a single leaf has height 1.
func (t *Tree[A, V]) Height() int {
	return height(t.root)
}

func height[A, V any](n *Node[A, V]) int {
	if n.IsLeaf() {
		return 1
	}
	return 1 + max(height(n.left), height(n.right))
}

// First returns the leftmost leaf of the tree.
func (t *Tree[A, V]) First() *Node[A, V] {
	return Leftmost(t.root)
}

// Last returns the rightmost leaf of the tree.
func (t *Tree[A, V]) Last() *Node[A, V] {
	return Rightmost(t.root)
}

// AddLeft adds a new leaf node to the left of an old leaf. A new internal
// node takes the place of old, with leaf and old as its children.
//
// old has to be a leaf currently in the tree and leaf has to be a detached
// leaf. Otherwise AddLeft panics with ErrStructuralViolation.
func (t *Tree[A, V]) AddLeft(leaf, old *Node[A, V]) {
	t.splice(leaf, old, true)
}

// AddRight adds a new leaf node to the right of an old leaf.
// See AddLeft.
func (t *Tree[A, V]) AddRight(leaf, old *Node[A, V]) {
	t.splice(leaf, old, false)
}

// Add adds a new leaf at a position determined by walker. If the walker
// descends to a leaf and asks for its right side, the new leaf is added right
// of it. Otherwise the new leaf goes to the left, which makes left the default for
// duplicate keys.
func (t *Tree[A, V]) Add(leaf *Node[A, V], walker Walker[A, V]) {
	at, d := Descend(t.root, walker)
	assert(at.IsLeaf(), "walker stopped at an internal node")
	if d == Right {
		t.AddRight(leaf, at)
		return
	}
	t.AddLeft(leaf, at)
}

func (t *Tree[A, V]) splice(leaf, old *Node[A, V], leftOf bool) {
	assert(leaf != nil && old != nil, "cannot add nil nodes")
	assert(old.IsLeaf(), "can only add new nodes next to leaves")
	assert(old.parent != nil || old == t.root, "anchor node is not part of the tree")
	assert(leaf.IsLeaf() && leaf.parent == nil && leaf != t.root, "new node must be a detached leaf")
	leaf.level = 1
	inner := &Node[A, V]{level: 2}
	t.replaceChild(old.parent, old, inner)
	if leftOf {
		inner.left, inner.right = leaf, old
	} else {
		inner.left, inner.right = old, leaf
	}
	leaf.parent, old.parent = inner, inner
	t.leaves++
	if t.cfg.Balancing == AA {
		t.rebalanceAfterAdd(inner)
		return
	}
	t.refold(inner, false)
}

// Remove removes a leaf from the tree. The sibling of leaf takes the place of
// their common parent, which is dropped. The tree retains no reference to
// leaf, which may be re-added later.
//
// If leaf is a child of the root, its sibling becomes the new root.
// Removing the last remaining leaf of a tree (i.e., its root) is not
// possible and panics with ErrStructuralViolation, as does removing an
// internal node.
func (t *Tree[A, V]) Remove(leaf *Node[A, V]) {
	assert(leaf != nil && leaf.IsLeaf(), "can only remove leaves")
	assert(leaf.parent != nil, "cannot remove the root or a detached node")
	p := leaf.parent
	sibling := leaf.sibling()
	gp := p.parent
	t.replaceChild(gp, p, sibling)
	leaf.parent = nil
	p.left, p.right, p.parent = nil, nil, nil
	t.leaves--
	if gp == nil {
		tracer().Debugf("aatree: removal of %v promoted sibling to root", leaf)
		return
	}
	if t.cfg.Balancing == AA {
		t.rebalanceAfterRemove(gp)
		return
	}
	t.refold(gp, false)
}

// ChangeAnnotation sets the annotation of a leaf and propagates the change
// up to the root. Annotations of leaves must not be changed in any other way.
func (t *Tree[A, V]) ChangeAnnotation(leaf *Node[A, V], ann A) {
	assert(leaf != nil && leaf.IsLeaf(), "can only change annotations of leaves")
	assert(leaf.parent != nil || leaf == t.root, "leaf is not part of the tree")
	leaf.ann = ann
	t.refold(leaf.parent, t.cfg.Equal != nil)
}

// Next returns the next leaf to the right of leaf.
//
// skip is optional. If given, it is called for nodes on the path, including
// internal ones, and subtrees for which skip returns true are not entered.
// skip should therefore only be true for a node if it would be true for every
// leaf below it.
//
// If there is no next leaf, Next returns false. Reaching the boundary is a
// normal condition when iterating.
func (t *Tree[A, V]) Next(leaf *Node[A, V], skip func(*Node[A, V]) bool) (*Node[A, V], bool) {
	assert(leaf != nil && leaf.IsLeaf(), "Next called for an internal node")
	n := leaf
	for n.parent != nil && (n.parent.right == n || (skip != nil && skip(n.parent.right))) {
		n = n.parent // move up until we can move right
	}
	if n.parent == nil {
		return nil, false
	}
	n = n.parent.right
	for !n.IsLeaf() { // move down, staying as far left as possible
		if skip != nil && skip(n.left) {
			n = n.right
		} else {
			n = n.left
		}
	}
	return n, true
}

// Prev returns the next leaf to the left of leaf. See Next.
func (t *Tree[A, V]) Prev(leaf *Node[A, V], skip func(*Node[A, V]) bool) (*Node[A, V], bool) {
	assert(leaf != nil && leaf.IsLeaf(), "Prev called for an internal node")
	n := leaf
	for n.parent != nil && (n.parent.left == n || (skip != nil && skip(n.parent.left))) {
		n = n.parent
	}
	if n.parent == nil {
		return nil, false
	}
	n = n.parent.left
	for !n.IsLeaf() {
		if skip != nil && skip(n.right) {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n, true
}

// Leaves returns an iterator over all leaves in order, including the
// sentinel (if it has not been removed).
func (t *Tree[A, V]) Leaves() iter.Seq[*Node[A, V]] {
	return func(yield func(*Node[A, V]) bool) {
		for n, ok := t.First(), true; ok; n, ok = t.Next(n, nil) {
			if !yield(n) {
				return
			}
		}
	}
}

// --- Helpers ----------------------------------------------------------------

// replaceChild links node n into the place of old, a child of parent.
// parent may be nil, in which case n becomes the root.
func (t *Tree[A, V]) replaceChild(parent, old, n *Node[A, V]) {
	n.parent = parent
	if parent == nil {
		t.root = n
		return
	}
	if parent.left == old {
		parent.left = n
		return
	}
	assert(parent.right == old, "parent/child links broken")
	parent.right = n
}

// fold re-computes the annotation of an internal node from its children.
func (t *Tree[A, V]) fold(n *Node[A, V]) {
	n.ann = t.cfg.Monoid.Add(n.left.ann, n.right.ann)
}

// refold re-annotates n and all of its ancestors. If early is set, refold
// stops at the first node whose annotation did not change.
func (t *Tree[A, V]) refold(n *Node[A, V], early bool) {
	for ; n != nil; n = n.parent {
		ann := t.cfg.Monoid.Add(n.left.ann, n.right.ann)
		if early && t.cfg.Equal(ann, n.ann) {
			return
		}
		n.ann = ann
	}
}
