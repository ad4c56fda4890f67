package aatree

import "fmt"

// Monoid defines how annotations are aggregated up the tree.
//
// For annotations s, t, u, Add must be associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero must be the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Associativity is what keeps annotations valid across rotations.
type Monoid[A any] interface {
	Zero() A
	Add(left, right A) A
}

// MonoidFunc adapts an identity element and an operation to Monoid.
type MonoidFunc[A any] struct {
	Identity A
	Op       func(left, right A) A
}

// Zero returns the identity element.
func (m MonoidFunc[A]) Zero() A { return m.Identity }

// Add applies the monoid operation.
func (m MonoidFunc[A]) Add(left, right A) A { return m.Op(left, right) }

// Balancing selects the re-balancing strategy of a tree.
type Balancing int8

const (
	// Unbalanced trees only maintain annotations. Their shape depends on the
	// order of insertions.
	Unbalanced Balancing = iota
	// AA trees additionally maintain the AA level invariants and thus have
	// logarithmic height.
	AA
)

func (b Balancing) String() string {
	switch b {
	case Unbalanced:
		return "unbalanced"
	case AA:
		return "AA"
	}
	return fmt.Sprintf("<bad balancing: %d>", int8(b))
}

// Config configures a monoid-annotated tree.
type Config[A any] struct {
	// Monoid aggregates annotations up the tree. Required.
	Monoid Monoid[A]
	// Balancing selects the re-balancing strategy.
	Balancing Balancing
	// Equal is optional. If set, re-annotation after ChangeAnnotation stops
	// at the first ancestor whose annotation did not change.
	Equal func(a, b A) bool
}

func (cfg Config[A]) validate() error {
	if cfg.Monoid == nil {
		return fmt.Errorf("%w: monoid is required", ErrInvalidConfig)
	}
	if mf, ok := cfg.Monoid.(MonoidFunc[A]); ok && mf.Op == nil {
		return fmt.Errorf("%w: monoid operation is nil", ErrInvalidConfig)
	}
	if cfg.Balancing != Unbalanced && cfg.Balancing != AA {
		return fmt.Errorf("%w: balancing %s", ErrInvalidConfig, cfg.Balancing)
	}
	return nil
}
