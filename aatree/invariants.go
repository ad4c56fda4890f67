package aatree

import "fmt"

// Check validates the structural invariants of a tree:
//
//   - every node has either two children or none,
//   - parent links mirror child links,
//   - the number of leaves matches the tree's bookkeeping.
//
// For AA trees Check additionally validates the level invariants:
//
//   - leaves are at level 1, internal nodes above,
//   - level(left child) < level(node),
//   - level(right child) <= level(node),
//   - level(right grandchild) < level(node).
//
// Check walks the complete tree and is intended for tests.
func (t *Tree[A, V]) Check() error {
	if t == nil || t.root == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}
	leaves, err := t.checkNode(t.root)
	if err != nil {
		return err
	}
	if leaves != t.leaves {
		return fmt.Errorf("%w: counted %d leaves, expected %d", ErrInvariant, leaves, t.leaves)
	}
	return nil
}

func (t *Tree[A, V]) checkNode(n *Node[A, V]) (int, error) {
	aa := t.cfg.Balancing == AA
	if n.IsLeaf() {
		if aa && n.level != 1 {
			return 0, fmt.Errorf("%w: leaf %v at level %d", ErrInvariant, n, n.level)
		}
		return 1, nil
	}
	if n.left == nil || n.right == nil {
		return 0, fmt.Errorf("%w: node %v has a single child", ErrInvariant, n)
	}
	if n.left.parent != n || n.right.parent != n {
		return 0, fmt.Errorf("%w: broken parent link below %v", ErrInvariant, n)
	}
	if aa {
		switch {
		case n.level < 2:
			return 0, fmt.Errorf("%w: internal node %v at level %d", ErrInvariant, n, n.level)
		case n.left.level >= n.level:
			return 0, fmt.Errorf("%w: left child of %v not below", ErrInvariant, n)
		case n.right.level > n.level:
			return 0, fmt.Errorf("%w: right child of %v above", ErrInvariant, n)
		case n.right.right != nil && n.right.right.level >= n.level:
			return 0, fmt.Errorf("%w: right grandchild of %v not below", ErrInvariant, n)
		}
	}
	l, err := t.checkNode(n.left)
	if err != nil {
		return 0, err
	}
	r, err := t.checkNode(n.right)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

// CheckAnnotations validates that every internal node is annotated with the
// monoid sum of its children's annotations, using eq to compare annotations.
func (t *Tree[A, V]) CheckAnnotations(eq func(a, b A) bool) error {
	var check func(*Node[A, V]) error
	check = func(n *Node[A, V]) error {
		if n.IsLeaf() {
			return nil
		}
		if want := t.cfg.Monoid.Add(n.left.ann, n.right.ann); !eq(n.ann, want) {
			return fmt.Errorf("%w: node annotated %v, children sum up to %v", ErrInvariant, n.ann, want)
		}
		if err := check(n.left); err != nil {
			return err
		}
		return check(n.right)
	}
	return check(t.root)
}
