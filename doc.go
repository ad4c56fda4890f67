/*
Package seqtree offers sequences which stay fast under random-position edits.

# Sequences

Lists of this package are backed by a balanced binary tree (see package
aatree) whose leaves hold the items in order. Every internal node counts
the items below it, which makes positional access, insertion and deletion
logarithmic. In addition, lists keep a map from values to leaves, so that
the position of a value can be found in logarithmic time as well.

HideList is a variant for collaborative editing. Items are never removed
but hidden ("tombstoned"), and positions may be given either among the
visible items or among all of them. Values of a HideList are identities:
every value may occur at most once.

	l := seqtree.NewHideList[string]()
	l.InsertSequenceAll(0, []string{"a", "b", "c"}, []bool{true, true, true})
	l.Hide(1, 1)              // hides "b"
	v, _ := l.Get(1)          // "c"
	i, _ := l.IndexAll("c")   // 2

EagerHideList has the same interface as HideList, implemented on plain
slices. Its edit operations are linear in the size of the list, which
makes it useful as a reference and for small lists only.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package seqtree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'seqtree'
func tracer() tracing.Trace {
	return tracing.Select("seqtree")
}

// ListError is an error type for the seqtree module
type ListError string

func (e ListError) Error() string {
	return string(e)
}

// ErrIndexOutOfRange is flagged whenever a position is outside of a list.
const ErrIndexOutOfRange = ListError("index out of range")

// ErrValueNotFound is flagged if a value is looked up which is not in a list.
const ErrValueNotFound = ListError("value not found")

// ErrDuplicateValue is flagged if a value is inserted into a hide list which
// already contains it.
const ErrDuplicateValue = ListError("value already present")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = ListError("illegal arguments")

func outOfRange(i, n int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
