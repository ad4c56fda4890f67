package aatree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("aatree: invalid configuration")
	// ErrStructuralViolation is wrapped by panics raised for operations which
	// would break the shape of a tree, e.g. splicing next to an internal node.
	ErrStructuralViolation = errors.New("aatree: structural violation")
	// ErrInvariant signals a tree failing an invariant check.
	ErrInvariant = errors.New("aatree: invariant violated")
)
