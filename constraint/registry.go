package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/set"
)

// AnyStore is the kind-erased view of a Store. An external model holds
// one AnyStore per (function kind, set kind) pair in its registry and
// dispatches bulk operations through it without knowing the kinds.
type AnyStore interface {
	// AddConstraint stores the pair, failing with ErrTypeMismatch when
	// the dynamic kinds do not match the partition's.
	AddConstraint(f expr.Function, st set.Set) (uint32, error)

	// NbConstraints returns the number of stored constraints.
	NbConstraints() int

	// Clear deletes every constraint.
	Clear()

	// Variables sets the bit of every variable referenced by a stored
	// function.
	Variables(vs *bitset.BitSet)

	// RemoveVariable cascades the removal of one variable, see
	// Store.RemoveVariable.
	RemoveVariable(v expr.Variable) error

	// FilterVariables cascades the removal of every variable rejected by
	// keep, see Store.FilterVariables.
	FilterVariables(keep func(v expr.Variable) bool) error
}

var _ AnyStore = (*Store[expr.ScalarAffine, set.EqualTo])(nil)

// AddConstraint implements AnyStore.
func (s *Store[F, S]) AddConstraint(f expr.Function, st set.Set) (uint32, error) {
	tf, ok := f.(F)
	if !ok {
		return 0, fmt.Errorf("%w: function kind %T not held by this partition", ErrTypeMismatch, f)
	}
	ts, ok := st.(S)
	if !ok {
		return 0, fmt.Errorf("%w: set kind %T not held by this partition", ErrTypeMismatch, st)
	}
	return uint32(s.Add(tf, ts)), nil
}

// Variables implements AnyStore.
func (s *Store[F, S]) Variables(vs *bitset.BitSet) {
	for i := range s.functions {
		expr.CollectVariables(s.functions[i], vs)
	}
}
