package sharedtext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/seqtree"
	"github.com/npillmayer/uax/grapheme"
)

// ErrClosed is returned for operations on a text which has been closed.
var ErrClosed = errors.New("sharedtext: text is closed")

// AtomID identifies an atom. Atoms inserted by the same edit share replica
// and edit number and are distinguished by offset.
type AtomID struct {
	Replica string
	Edit    uint64
	Offset  int
}

func (id AtomID) String() string {
	return fmt.Sprintf("%s/%d.%d", id.Replica, id.Edit, id.Offset)
}

// Atom is a grapheme cluster together with its identity.
type Atom struct {
	ID       AtomID
	Grapheme string
}

// EditKind tells inserts from deletes.
type EditKind int

// Kinds of edits.
const (
	Inserted EditKind = iota
	Deleted
)

func (k EditKind) String() string {
	if k == Inserted {
		return "insert"
	}
	return "delete"
}

// Edit describes a change of a text, independent of positions.
//
// For inserts, Atoms are placed directly left of atom LeftOf. If AtEnd is set,
// LeftOf is ignored and the atoms are appended. For deletes, the atoms
// listed in IDs are hidden.
type Edit struct {
	Kind   EditKind
	LeftOf AtomID
	AtEnd  bool
	Atoms  []Atom
	IDs    []AtomID
}

// Text is a shared text buffer. It is safe for concurrent use.
type Text struct {
	mu        sync.Mutex
	replica   string
	clock     uint64
	atoms     seqtree.Hider[AtomID]
	graphemes map[AtomID]string
	cast      *caster.Caster
	closed    bool
}

// Option configures a Text.
type Option func(*Text)

// WithAtoms sets the sequence implementation for the atoms of a text.
// It has to be empty. The default is a seqtree.HideList.
func WithAtoms(atoms seqtree.Hider[AtomID]) Option {
	return func(t *Text) {
		t.atoms = atoms
	}
}

var setupGraphemes sync.Once

// New creates an empty text for a replica. Replica names have to be unique
// among all replicas which exchange edits.
func New(replica string, opts ...Option) *Text {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	t := &Text{
		replica:   replica,
		graphemes: make(map[AtomID]string),
		cast:      caster.New(nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.atoms == nil {
		t.atoms = seqtree.NewHideList[AtomID]()
	}
	return t
}

// Replica returns the name of the replica this text belongs to.
func (t *Text) Replica() string {
	return t.replica
}

// Len returns the number of visible grapheme clusters.
func (t *Text) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.atoms.Len()
}

// String returns the visible text.
func (t *Text) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sb strings.Builder
	for id := range t.atoms.Values() {
		sb.WriteString(t.graphemes[id])
	}
	return sb.String()
}

// Insert inserts s in front of the grapheme cluster at visible position pos.
// Inserting at Len() appends s. The edit is broadcast to subscribers and
// returned, to be applied to other replicas.
func (t *Text) Insert(pos int, s string) (Edit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return Edit{}, ErrClosed
	}
	if pos < 0 || pos > t.atoms.Len() {
		return Edit{}, fmt.Errorf("%w: %d not in [0, %d]", seqtree.ErrIndexOutOfRange, pos, t.atoms.Len())
	}
	gstr := grapheme.StringFromString(s)
	if gstr.Len() == 0 {
		return Edit{}, fmt.Errorf("%w: empty insert", seqtree.ErrIllegalArguments)
	}
	t.clock++
	e := Edit{Kind: Inserted, Atoms: make([]Atom, gstr.Len())}
	for i := range e.Atoms {
		e.Atoms[i] = Atom{
			ID:       AtomID{Replica: t.replica, Edit: t.clock, Offset: i},
			Grapheme: gstr.Nth(i),
		}
	}
	if pos == t.atoms.Len() {
		e.AtEnd = true
	} else {
		e.LeftOf, _ = t.atoms.Get(pos)
	}
	if err := t.applyInsert(e); err != nil {
		return Edit{}, err
	}
	tracer().Debugf("%s: insert %q at %d", t.replica, s, pos)
	t.cast.Pub(e)
	return e, nil
}

// Delete hides n grapheme clusters, starting at visible position pos.
func (t *Text) Delete(pos, n int) (Edit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return Edit{}, ErrClosed
	}
	ids, err := t.atoms.Slice(pos, pos+n)
	if err != nil || n == 0 {
		return Edit{}, err
	}
	if err := t.atoms.Hide(pos, n); err != nil {
		return Edit{}, err
	}
	e := Edit{Kind: Deleted, IDs: ids}
	tracer().Debugf("%s: delete %d at %d", t.replica, n, pos)
	t.cast.Pub(e)
	return e, nil
}

// Apply applies an edit of another replica. Applied edits are not broadcast.
// Applying an insert twice fails with seqtree.ErrDuplicateValue, applying a
// delete twice has no effect.
func (t *Text) Apply(e Edit) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	switch e.Kind {
	case Inserted:
		return t.applyInsert(e)
	case Deleted:
		return t.applyDelete(e.IDs)
	}
	return fmt.Errorf("%w: unknown edit kind %d", seqtree.ErrIllegalArguments, e.Kind)
}

// ApplyInsert places atoms of another replica directly left of atom leftOf.
// A nil leftOf appends them.
func (t *Text) ApplyInsert(leftOf *AtomID, atoms []Atom) error {
	e := Edit{Kind: Inserted, Atoms: atoms, AtEnd: leftOf == nil}
	if leftOf != nil {
		e.LeftOf = *leftOf
	}
	return t.Apply(e)
}

// ApplyDelete hides atoms, as deleted by another replica.
func (t *Text) ApplyDelete(ids []AtomID) error {
	return t.Apply(Edit{Kind: Deleted, IDs: ids})
}

func (t *Text) applyInsert(e Edit) error {
	ids := make([]AtomID, len(e.Atoms))
	visible := make([]bool, len(e.Atoms))
	for i, a := range e.Atoms {
		ids[i], visible[i] = a.ID, true
	}
	var err error
	if e.AtEnd {
		err = t.atoms.InsertSequenceAll(t.atoms.TotalLen(), ids, visible)
	} else {
		err = t.atoms.InsertSequenceLeftOf(e.LeftOf, ids, visible)
	}
	if err != nil {
		return err
	}
	for _, a := range e.Atoms {
		t.graphemes[a.ID] = a.Grapheme
	}
	return nil
}

func (t *Text) applyDelete(ids []AtomID) error {
	for _, id := range ids {
		if !t.atoms.Contains(id) {
			return fmt.Errorf("%w: atom %v", seqtree.ErrValueNotFound, id)
		}
	}
	for _, id := range ids {
		if _, err := t.atoms.HideItem(id); err != nil {
			return err
		}
	}
	return nil
}

// Atoms returns every atom of the text, including deleted ones, together with
// its visibility.
func (t *Text) Atoms() ([]Atom, []bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	atoms := make([]Atom, 0, t.atoms.TotalLen())
	visible := make([]bool, 0, t.atoms.TotalLen())
	for id, vis := range t.atoms.All() {
		atoms = append(atoms, Atom{ID: id, Grapheme: t.graphemes[id]})
		visible = append(visible, vis)
	}
	return atoms, visible
}

// Subscribe returns a channel of the local edits of t. The channel is closed
// when ctx is done or t is closed. Subscribers have to keep reading until
// they cancel ctx, as local edits block on full subscriptions.
func (t *Text) Subscribe(ctx context.Context) (<-chan Edit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}
	sub, ok := t.cast.Sub(ctx, 16)
	if !ok {
		return nil, ErrClosed
	}
	edits := make(chan Edit)
	go func() {
		defer close(edits)
		for msg := range sub {
			select {
			case edits <- msg.(Edit):
			case <-ctx.Done():
				// drain until the caster drops the subscription, otherwise
				// its send to a full channel blocks every later edit
				for range sub {
				}
				return
			}
		}
	}()
	return edits, nil
}

// Close stops broadcasting edits and closes every subscription. A closed text
// may still be read.
func (t *Text) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.closed = true
		t.cast.Close()
	}
}
