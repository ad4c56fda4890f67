/*
Package aatree implements binary trees with monoid annotations, optionally
balanced as AA trees.

Every node of a tree carries an annotation from a monoid. Leaves are
annotated by clients, internal nodes always carry the monoid sum of their
two children. This makes it possible to navigate a tree by summaries (e.g.,
"find the 7th visible item") and to recover summaries for a path (e.g.,
"how many items are left of this leaf?") in logarithmic time.

Trees are strictly binary: a node has either no children (a leaf) or two.
A fresh tree consists of a single sentinel leaf annotated with the monoid's
neutral element. Leaves are spliced in next to existing leaves and removed
again by promoting their sibling, internal nodes are created and dropped as
a side effect.

Navigation is driven by walkers. A walker decides at every node whether to
descend left or right, or whether it has arrived. Trees themselves are
oblivious to the semantics of annotations.

	tree, _ := aatree.New[int, string](aatree.Config[int]{
	    Monoid:    aatree.SumMonoid{},
	    Balancing: aatree.AA,
	})
	w := &aatree.SumWalker[string]{}
	w.PrepareDescend(0)
	tree.Add(aatree.NewLeaf(1, "first"), w)

AA balancing follows Arne Andersson, “Balanced Search Trees Made Simple”,
1993, with rotations extended to keep parent links and annotations intact.
See also https://en.wikipedia.org/wiki/AA_tree.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package aatree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'seqtree'
func tracer() tracing.Trace {
	return tracing.Select("seqtree.aatree")
}

// assert panics with a structural violation if condition does not hold.
// Failing assertions indicate a programming error on the client side or
// a broken tree; neither can be recovered from locally.
func assert(condition bool, msg string) {
	if !condition {
		panic(fmt.Errorf("%w: %s", ErrStructuralViolation, msg))
	}
}
