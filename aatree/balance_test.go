package aatree

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./aatree -run TestBalancingRandomizedProperty -count=1
//   - Fuzz test for this file:
//     go test ./aatree -run '^$' -fuzz FuzzBalancing -fuzztime=10s

// concat is associative but not commutative, which makes it sensitive to
// rotations mixing up the order of children.
var concat = MonoidFunc[string]{Op: func(a, b string) string { return a + b }}

type stringTree = Tree[string, string]

func newConcatTree(t *testing.T) *stringTree {
	t.Helper()
	tree, err := New[string, string](Config[string]{Monoid: concat, Balancing: AA})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tree
}

func assertBalancedAndFolded(t *testing.T, tree *stringTree) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
	if err := tree.CheckAnnotations(func(a, b string) bool { return a == b }); err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for n := range tree.Leaves() {
		sb.WriteString(n.Annotation())
	}
	if tree.Annotation() != sb.String() {
		t.Fatalf("root annotation %q does not match leaves %q", tree.Annotation(), sb.String())
	}
	n := tree.LeafCount()
	if bound := 2*math.Log2(float64(n+1)) + 3; float64(tree.Height()) > bound {
		t.Fatalf("height %d exceeds bound %.1f for %d leaves", tree.Height(), bound, n)
	}
}

type mutator struct {
	tree     *stringTree
	sentinel *Node[string, string]
	leaves   []*Node[string, string]
	serial   int
}

func (m *mutator) label() string {
	m.serial++
	return fmt.Sprintf("%d,", m.serial)
}

func (m *mutator) apply(op, arg int, r *rand.Rand) {
	anchors := len(m.leaves) + 1
	anchor := m.sentinel
	if k := arg % anchors; k < len(m.leaves) {
		anchor = m.leaves[k]
	}
	switch op % 4 {
	case 0:
		l := m.label()
		n := NewLeaf(l, l)
		m.tree.AddLeft(n, anchor)
		m.leaves = append(m.leaves, n)
	case 1:
		l := m.label()
		n := NewLeaf(l, l)
		m.tree.AddRight(n, anchor)
		m.leaves = append(m.leaves, n)
	case 2:
		l := m.label()
		n := NewLeaf(l, l)
		w := &RandomWalker[string, string]{}
		w.PrepareDescend(r)
		m.tree.Add(n, w)
		m.leaves = append(m.leaves, n)
	default:
		if len(m.leaves) == 0 {
			return
		}
		k := arg % len(m.leaves)
		m.tree.Remove(m.leaves[k])
		m.leaves[k] = m.leaves[len(m.leaves)-1]
		m.leaves = m.leaves[:len(m.leaves)-1]
	}
}

func TestBalancingRandomizedProperty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	for seed := int64(1); seed <= 40; seed++ {
		r := rand.New(rand.NewSource(seed))
		tree := newConcatTree(t)
		m := &mutator{tree: tree, sentinel: tree.Root()}
		for range 250 {
			op := r.Intn(4)
			if r.Intn(10) < 3 {
				op = 3 // removals rebalance differently, give them more weight
			}
			m.apply(op, r.Intn(1<<16), r)
			assertBalancedAndFolded(t, tree)
		}
		if tree.LeafCount() != len(m.leaves)+1 {
			t.Fatalf("seed %d: leaf count %d, expected %d", seed, tree.LeafCount(), len(m.leaves)+1)
		}
	}
}

func TestDrainToSentinel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	tree := newConcatTree(t)
	m := &mutator{tree: tree, sentinel: tree.Root()}
	for i := range 64 {
		m.apply(i%2, i*7, nil)
	}
	assertBalancedAndFolded(t, tree)
	for len(m.leaves) > 0 {
		m.apply(3, len(m.leaves)/2, nil)
		assertBalancedAndFolded(t, tree)
	}
	if tree.Root() != m.sentinel || tree.Annotation() != "" {
		t.Errorf("expected sentinel to remain as root")
	}
}

func FuzzBalancing(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 0, 0, 1, 3, 3})
	f.Add([]byte{1, 5, 9, 13, 17, 3, 7, 11, 2, 6})
	f.Add([]byte{0, 4, 8, 12, 16, 20, 24, 3, 3, 3, 3})
	f.Fuzz(func(t *testing.T, ops []byte) {
		teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
		defer teardown()
		//
		r := rand.New(rand.NewSource(int64(len(ops))))
		tree := newConcatTree(t)
		m := &mutator{tree: tree, sentinel: tree.Root()}
		for i, b := range ops {
			m.apply(int(b), int(b)>>2+i, r)
		}
		assertBalancedAndFolded(t, tree)
	})
}
