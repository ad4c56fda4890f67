package aatree

// Descend walks down from node as directed by walker.
//
// If the walker accepts a node n, Descend returns (n, Here). Otherwise it
// returns (L, Left) or (L, Right), where L is a leaf: the walker is looking
// for a position which is not present in the tree, but would be in the
// (empty) left or right subtree of L.
//
// As every internal node has two children, Descend always terminates at a
// leaf if the walker never says Here.
func Descend[A, V any](node *Node[A, V], walker Walker[A, V]) (*Node[A, V], Direction) {
	d := walker.Descend(node)
	for d != Here {
		next := node.left
		if d == Right {
			next = node.right
		}
		if next == nil {
			return node, d
		}
		node = next
		d = walker.Descend(node)
	}
	return node, Here
}

// Ascend walks up from node towards the root, until walker asks to stop or
// the root has been passed. Nothing is returned; clients retrieve the result
// of the walk from the walker's state.
func Ascend[A, V any](node *Node[A, V], walker Walker[A, V]) {
	for node != nil && walker.Ascend(node) {
		node = node.parent
	}
}
