package aatree

import "fmt"

// Node is a node of a binary tree. Apart from links to its children it
// links back to its parent. The parent link never implies ownership: nodes
// are owned by the tree containing them.
//
// Annotations and values are distinct. The annotation is maintained by the
// tree (for internal nodes) or assigned by clients (for leaves, via
// Tree.ChangeAnnotation). The value is opaque to the tree; in list-like
// trees only leaves carry meaningful values.
type Node[A, V any] struct {
	parent *Node[A, V]
	left   *Node[A, V]
	right  *Node[A, V]
	ann    A
	value  V
	level  int // AA level, 1 for leaves
}

// NewLeaf creates a detached leaf node, ready to be added to a tree.
func NewLeaf[A, V any](ann A, value V) *Node[A, V] {
	return &Node[A, V]{ann: ann, value: value, level: 1}
}

// Parent returns the parent node, or nil for the root of a tree.
func (n *Node[A, V]) Parent() *Node[A, V] { return n.parent }

// Left returns the left child, or nil for a leaf.
func (n *Node[A, V]) Left() *Node[A, V] { return n.left }

// Right returns the right child, or nil for a leaf.
func (n *Node[A, V]) Right() *Node[A, V] { return n.right }

// Annotation returns the node's annotation.
func (n *Node[A, V]) Annotation() A { return n.ann }

// Value returns the client value of a node.
func (n *Node[A, V]) Value() V { return n.value }

// Level returns the AA level of a node. Leaves are at level 1.
func (n *Node[A, V]) Level() int { return n.level }

// IsLeaf is true for nodes without children.
func (n *Node[A, V]) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// IsRoot is true for nodes without a parent.
func (n *Node[A, V]) IsRoot() bool {
	return n.parent == nil
}

func (n *Node[A, V]) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsLeaf() {
		return fmt.Sprintf("leaf[%v|%v]", n.ann, n.value)
	}
	return fmt.Sprintf("node[%v|L%d]", n.ann, n.level)
}

// sibling returns the other child of n's parent.
func (n *Node[A, V]) sibling() *Node[A, V] {
	if n.parent.left == n {
		return n.parent.right
	}
	return n.parent.left
}

// Leftmost returns the leftmost leaf in the subtree of n.
func Leftmost[A, V any](n *Node[A, V]) *Node[A, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Rightmost returns the rightmost leaf in the subtree of n.
func Rightmost[A, V any](n *Node[A, V]) *Node[A, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}
