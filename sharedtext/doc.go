/*
Package sharedtext implements a text buffer which may be edited by several
replicas of it.

Text is split into grapheme clusters, called atoms. Every atom is given an
identity (AtomID) when it is inserted, which is unique across replicas and
never re-used. Deleting text hides atoms without removing them, so an
atom remains a valid anchor for edits of other replicas, which may not
have seen the deletion yet.

Local edits produce Edit values, addressed by atom identities instead of
positions. Edits are broadcast to subscribers and may be applied to other
replicas. How concurrent edits are ordered and transported is up to clients.

	a := sharedtext.New("A")
	b := sharedtext.New("B")
	e, _ := a.Insert(0, "Hello")
	b.Apply(e)  // b.String() == "Hello"

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package sharedtext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'seqtree.text'
func tracer() tracing.Trace {
	return tracing.Select("seqtree.text")
}
