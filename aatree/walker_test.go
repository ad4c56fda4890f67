package aatree

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSumWalkerPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	tree := newSumTree(t, AA)
	w := &SumWalker[string]{}
	for i, v := range []string{"a", "b", "d", "e"} {
		w.PrepareDescend(i)
		tree.Add(NewLeaf(1, v), w)
	}
	w.PrepareDescend(2)
	tree.Add(NewLeaf(1, "c"), w)
	want := []string{"a", "b", "c", "d", "e"}
	if got := leafValues(tree); !slices.Equal(got[:len(got)-1], want) {
		t.Fatalf("expected leaves %q, have %q", want, got)
	}
	for i, v := range want {
		w.PrepareDescend(i)
		n, d := Descend(tree.Root(), w)
		if d != Here || n.Value() != v {
			t.Errorf("position %d: expected %q/here, have %q/%s", i, v, n.Value(), d)
		}
		w.PrepareAscend()
		Ascend(n, w)
		if w.Target != i {
			t.Errorf("ascending from %q: expected position %d, have %d", v, i, w.Target)
		}
	}
	w.PrepareDescend(len(want))
	if n, d := Descend(tree.Root(), w); d != Left || n != tree.Last() {
		t.Errorf("expected end position to be left of sentinel, have %v/%s", n, d)
	}
}

func TestMultiSumWalkerChannels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	tree, err := New[Counts, string](Config[Counts]{Monoid: CountsMonoid{}, Balancing: AA})
	if err != nil {
		t.Fatal(err)
	}
	s := tree.Root()
	tree.AddLeft(NewLeaf(Counts{1, 1}, "a"), s)
	tree.AddLeft(NewLeaf(Counts{0, 1}, "b"), s)
	tree.AddLeft(NewLeaf(Counts{1, 1}, "c"), s)
	if tree.Annotation() != (Counts{2, 3}) {
		t.Fatalf("expected root counts [2 3], have %v", tree.Annotation())
	}
	w := &MultiSumWalker[string]{}
	cases := []struct {
		pos, ch int
		want    string
	}{
		{0, Visible, "a"}, {1, Visible, "c"},
		{0, Total, "a"}, {1, Total, "b"}, {2, Total, "c"},
	}
	for _, c := range cases {
		w.PrepareDescend(c.pos, c.ch)
		n, d := Descend(tree.Root(), w)
		if d != Here || n.Value() != c.want {
			t.Errorf("position %d in channel %d: expected %q, have %v/%s", c.pos, c.ch, c.want, n, d)
		}
	}
	b, _ := tree.Next(tree.First(), nil)
	w.PrepareAscend(Visible)
	Ascend(b, w)
	if w.Target != 1 {
		t.Errorf("expected hidden b at visible position 1, have %d", w.Target)
	}
	w.PrepareAscend(Total)
	Ascend(b, w)
	if w.Target != 1 {
		t.Errorf("expected b at absolute position 1, have %d", w.Target)
	}
}

func TestSearchWalkerKeepsKeysSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	maxMonoid := MonoidFunc[int]{
		Identity: math.MinInt,
		Op:       func(a, b int) int { return max(a, b) },
	}
	tree, err := New[int, string](Config[int]{Monoid: maxMonoid, Balancing: AA})
	if err != nil {
		t.Fatal(err)
	}
	w := &SearchWalker[int, string]{}
	keys := []int{5, 3, 8, 1, 4, 7, 9, 2, 6, 0, 4}
	for _, k := range keys {
		w.PrepareDescend(k, cmp.Compare[int])
		tree.Add(NewLeaf(k, strconv.Itoa(k)), w)
	}
	var got []int
	for n := range tree.Leaves() {
		if n.Annotation() != math.MinInt {
			got = append(got, n.Annotation())
		}
	}
	want := slices.Clone(keys)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Fatalf("expected sorted keys %v, have %v", want, got)
	}
	if tree.Annotation() != 9 {
		t.Errorf("expected max key 9 at root, have %d", tree.Annotation())
	}
	w.PrepareDescend(6, cmp.Compare[int])
	n, d := Descend(tree.Root(), w)
	if d != Here || n.Value() != "6" {
		t.Errorf("expected to find key 6, have %v/%s", n, d)
	}
	w.Key = 0
	Ascend(n, w)
	if w.Key != 6 {
		t.Errorf("expected ascent to record key 6, have %d", w.Key)
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestRandomWalkerEndsAtLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree.aatree")
	defer teardown()
	//
	tree, _ := abc(t, AA)
	w := &RandomWalker[int, string]{}
	w.PrepareDescend(nil)
	for range 20 {
		n, d := Descend(tree.Root(), w)
		if !n.IsLeaf() || d == Here {
			t.Fatalf("random descent ended at %v/%s", n, d)
		}
	}
	if w.Ascend(tree.First()) {
		t.Errorf("random walker should not ascend")
	}
}
