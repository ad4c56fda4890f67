package seqtree

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// hiders returns fresh instances of every Hider implementation.
func hiders() map[string]func() Hider[string] {
	return map[string]func() Hider[string]{
		"tree":  func() Hider[string] { return NewHideList[string]() },
		"eager": func() Hider[string] { return NewEagerHideList[string]() },
	}
}

func allVisible(n int) []bool {
	vis := make([]bool, n)
	for i := range vis {
		vis[i] = true
	}
	return vis
}

func checkHider(t *testing.T, l Hider[string]) {
	t.Helper()
	if hl, ok := l.(*HideList[string]); ok {
		if err := hl.Check(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestHideListHideRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		for i, v := range []string{"w", "x", "y", "z"} {
			if err := l.InsertSequenceAll(i, []string{v}, []bool{true}); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
		}
		if l.Len() != 4 {
			t.Fatalf("%s: expected length 4, is %d", name, l.Len())
		}
		if err := l.Hide(1, 2); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if l.Len() != 2 || l.TotalLen() != 4 {
			t.Errorf("%s: expected 2 of 4 items visible, have %d of %d", name, l.Len(), l.TotalLen())
		}
		v0, _ := l.Get(0)
		v1, _ := l.Get(1)
		if v0 != "w" || v1 != "z" {
			t.Errorf("%s: expected visible w, z; have %s, %s", name, v0, v1)
		}
		if v, _ := l.GetAll(1); v != "x" {
			t.Errorf("%s: expected x at absolute position 1, have %s", name, v)
		}
		if vis, err := l.IsVisibleItem("x"); err != nil || vis {
			t.Errorf("%s: expected x to be hidden", name)
		}
		checkHider(t, l)
	}
}

func TestHideListPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		seq := []string{"a", "b", "c", "d", "e", "f"}
		if err := l.InsertSequenceAll(0, seq, []bool{true, false, false, true, true, false}); err != nil {
			t.Fatal(err)
		}
		if got := slices.Collect(l.Values()); !slices.Equal(got, []string{"a", "d", "e"}) {
			t.Errorf("%s: visible items are %v", name, got)
		}
		for i, v := range seq {
			j, err := l.IndexAll(v)
			if err != nil || j != i {
				t.Errorf("%s: expected %s at absolute position %d, is at %d", name, v, i, j)
			}
		}
		// hidden items report the visible position of their successor
		expected := map[string]int{"a": 0, "b": 1, "c": 1, "d": 1, "e": 2, "f": 3}
		for v, pos := range expected {
			if j, _ := l.Index(v); j != pos {
				t.Errorf("%s: expected visible position %d for %s, is %d", name, pos, v, j)
			}
		}
		if s, err := l.Slice(1, 3); err != nil || !slices.Equal(s, []string{"d", "e"}) {
			t.Errorf("%s: Slice(1,3) = %v (%v)", name, s, err)
		}
		if s, err := l.SliceAll(1, 4); err != nil || !slices.Equal(s, []string{"b", "c", "d"}) {
			t.Errorf("%s: SliceAll(1,4) = %v (%v)", name, s, err)
		}
		if s, err := l.Slice(3, 3); err != nil || len(s) != 0 {
			t.Errorf("%s: expected empty slice at the end, got %v (%v)", name, s, err)
		}
		if _, err := l.Slice(2, 4); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected Slice past the end to fail, got %v", name, err)
		}
		for i, want := range []bool{true, false, false, true, true, false} {
			if vis, _ := l.IsVisible(i); vis != want {
				t.Errorf("%s: IsVisible(%d) = %v", name, i, vis)
			}
		}
		var all []string
		for v, vis := range l.All() {
			if vis {
				all = append(all, v)
			} else {
				all = append(all, "("+v+")")
			}
		}
		if !slices.Equal(all, []string{"a", "(b)", "(c)", "d", "e", "(f)"}) {
			t.Errorf("%s: All yields %v", name, all)
		}
		checkHider(t, l)
	}
}

func TestHideListInsertLeftOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		_ = l.InsertSequenceAll(0, []string{"a", "b", "c"}, []bool{true, false, true})
		if err := l.InsertSequenceLeftOf("b", []string{"x", "y"}, []bool{true, false}); err != nil {
			t.Fatal(err)
		}
		if err := l.InsertSequenceAll(l.TotalLen(), []string{"z"}, []bool{true}); err != nil {
			t.Fatal(err)
		}
		all, _ := l.SliceAll(0, l.TotalLen())
		if !slices.Equal(all, []string{"a", "x", "y", "b", "c", "z"}) {
			t.Errorf("%s: items are %v", name, all)
		}
		if got := slices.Collect(l.Values()); !slices.Equal(got, []string{"a", "x", "c", "z"}) {
			t.Errorf("%s: visible items are %v", name, got)
		}
		if err := l.InsertSequenceLeftOf("q", []string{"r"}, []bool{true}); !errors.Is(err, ErrValueNotFound) {
			t.Errorf("%s: expected unknown target to fail, got %v", name, err)
		}
		checkHider(t, l)
	}
}

func TestHideListRejectsInvalidInserts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		_ = l.InsertSequenceAll(0, []string{"a", "b"}, allVisible(2))
		err := l.InsertSequenceAll(1, []string{"c", "a"}, allVisible(2))
		if !errors.Is(err, ErrDuplicateValue) {
			t.Errorf("%s: expected duplicate to be rejected, got %v", name, err)
		}
		err = l.InsertSequenceAll(1, []string{"c", "c"}, allVisible(2))
		if !errors.Is(err, ErrDuplicateValue) {
			t.Errorf("%s: expected duplicate within sequence to be rejected, got %v", name, err)
		}
		err = l.InsertSequenceAll(1, []string{"c", "d"}, allVisible(1))
		if !errors.Is(err, ErrIllegalArguments) {
			t.Errorf("%s: expected length mismatch to be rejected, got %v", name, err)
		}
		err = l.InsertSequenceAll(3, []string{"c"}, allVisible(1))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected position past the end to be rejected, got %v", name, err)
		}
		if l.TotalLen() != 2 || l.Contains("c") {
			t.Errorf("%s: rejected insert changed the list", name)
		}
		checkHider(t, l)
	}
}

func TestHideLaws(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		seq := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
		_ = l.InsertSequenceAll(0, seq, allVisible(len(seq)))
		if err := l.Hide(2, 3); err != nil {
			t.Fatal(err)
		}
		if l.Len() != 7 {
			t.Errorf("%s: expected 7 visible items after hiding 3, have %d", name, l.Len())
		}
		// hiding across the hidden run hides visible items only
		if err := l.Hide(1, 2); err != nil {
			t.Fatal(err)
		}
		if got := slices.Collect(l.Values()); !slices.Equal(got, []string{"0", "6", "7", "8", "9"}) {
			t.Errorf("%s: visible items are %v", name, got)
		}
		for i, v := range seq {
			w, err := l.GetAll(i)
			if err != nil || w != v {
				t.Errorf("%s: hidden item %s not reachable by absolute position", name, v)
			}
		}
		if changed, err := l.HideItem("7"); err != nil || !changed {
			t.Errorf("%s: expected HideItem to hide 7", name)
		}
		if changed, err := l.HideItem("7"); err != nil || changed {
			t.Errorf("%s: expected second HideItem to be a no-op", name)
		}
		if l.Len() != 4 {
			t.Errorf("%s: expected 4 visible items, have %d", name, l.Len())
		}
		if _, err := l.HideItem("x"); !errors.Is(err, ErrValueNotFound) {
			t.Errorf("%s: expected HideItem of unknown value to fail", name)
		}
		if err := l.Hide(3, 2); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected Hide past the end to fail, got %v", name, err)
		}
		if err := l.Hide(0, 0); err != nil || l.Len() != 4 {
			t.Errorf("%s: expected empty Hide to be a no-op", name)
		}
		if err := l.Hide(0, l.Len()); err != nil || l.Len() != 0 {
			t.Errorf("%s: expected every item hidden", name)
		}
		if n := len(slices.Collect(l.Values())); n != 0 {
			t.Errorf("%s: expected no visible items, have %d", name, n)
		}
		checkHider(t, l)
	}
}

func TestHideListEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "seqtree")
	defer teardown()
	//
	for name, create := range hiders() {
		l := create()
		if _, err := l.Get(0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected Get on empty list to fail", name)
		}
		if _, err := l.IsVisible(0); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: expected IsVisible on empty list to fail", name)
		}
		if _, err := l.Index("a"); !errors.Is(err, ErrValueNotFound) {
			t.Errorf("%s: expected Index on empty list to fail", name)
		}
		if s, err := l.SliceAll(0, 0); err != nil || len(s) != 0 {
			t.Errorf("%s: expected empty slice", name)
		}
		if err := l.InsertSequenceAll(0, nil, nil); err != nil || l.TotalLen() != 0 {
			t.Errorf("%s: expected empty insert to be a no-op", name)
		}
		checkHider(t, l)
	}
}
