package aatree

// Skew, split and decreaseLevel are the AA balancing operations, modified to
// (1) maintain parent links and (2) maintain annotations.
//
// A rotation leaves the set of leaves below the rotated subtree unchanged.
// The node moving up therefore inherits the annotation of the node moving
// down, which in turn is re-folded from its new children. By associativity
// of the monoid operation this is the same value a fold from scratch would
// produce.

// skew removes a horizontal left link by rotating right.
// It returns the node now at n's former place.
func (t *Tree[A, V]) skew(n *Node[A, V]) *Node[A, V] {
	l := n.left
	if l == nil || l.level != n.level {
		return n
	}
	parent := n.parent
	n.left = l.right
	n.left.parent = n
	l.right = n
	t.replaceChild(parent, n, l)
	n.parent = l
	l.ann = n.ann
	t.fold(n)
	return l
}

// split removes two consecutive horizontal right links by rotating left and
// lifting the middle node one level up.
// It returns the node now at n's former place.
func (t *Tree[A, V]) split(n *Node[A, V]) *Node[A, V] {
	r := n.right
	if r == nil || r.right == nil || r.right.level != n.level {
		return n
	}
	parent := n.parent
	n.right = r.left
	n.right.parent = n
	r.left = n
	t.replaceChild(parent, n, r)
	n.parent = r
	r.level++
	r.ann = n.ann
	t.fold(n)
	return r
}

// decreaseLevel lowers the level of n if one of its children is more than
// one level below. A right child on n's level is lowered together with n.
// Returns true if a level has been changed.
func decreaseLevel[A, V any](n *Node[A, V]) bool {
	target := min(n.left.level, n.right.level) + 1
	if target >= n.level {
		return false
	}
	n.level = target
	if target < n.right.level {
		n.right.level = target
	}
	return true
}

// rebalanceAfterAdd is called for a freshly spliced internal node, one level
// above the leaves, and ascends to the root.
func (t *Tree[A, V]) rebalanceAfterAdd(n *Node[A, V]) {
	for n != nil {
		t.fold(n)
		n = t.skew(n)
		n = t.split(n)
		n = n.parent
	}
}

// rebalanceAfterRemove is called for the former grandparent of a removed leaf
// and ascends to the root. Deletion may need up to three skews and two
// splits per level.
func (t *Tree[A, V]) rebalanceAfterRemove(n *Node[A, V]) {
	for n != nil {
		t.fold(n)
		decreaseLevel(n)
		n = t.skew(n)
		t.skew(n.right)
		if n.right.right != nil {
			t.skew(n.right.right)
		}
		n = t.split(n)
		t.split(n.right)
		n = n.parent
	}
}
