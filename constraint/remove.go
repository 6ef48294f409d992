// Copyright 2024 The optkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package constraint

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/logger"
	"github.com/optkit/optkit/set"
)

// RemoveVariable cascades the removal of v across the partition: every
// term referencing v is stripped from every stored function, a
// SingleVariable constraint on v is deleted, and VectorOfVariables groups
// follow the group-constraint rule;
//   - a group of size 1 containing v is deleted in full
//   - a larger group refuses the removal with ErrDeleteNotAllowed unless
//     its set supports dimension updates
//   - a group legally reduced to exactly one remaining member is deleted
//     in full
//
// All group constraints are validated before any state is touched, so a
// failed call leaves the partition exactly as it was.
func (s *Store[F, S]) RemoveVariable(v expr.Variable) error {
	return s.FilterVariables(func(u expr.Variable) bool { return u != v })
}

// FilterVariables cascades the removal of every variable rejected by keep,
// under the same rules as RemoveVariable. A group losing all of its
// members at once is deleted in full regardless of its set kind.
func (s *Store[F, S]) FilterVariables(keep func(v expr.Variable) bool) error {
	if !s.touchesFiltered(keep) {
		return nil
	}
	if err := s.validateGroups(keep); err != nil {
		return err
	}

	deleted, rewritten := 0, 0
	for sl := len(s.functions) - 1; sl >= 0; sl-- {
		var f expr.Function = s.functions[sl]
		switch f := f.(type) {
		case expr.SingleVariable:
			if !keep(f.VID) {
				s.deleteSlot(int32(sl))
				deleted++
			}
		case expr.VectorOfVariables:
			kept := expr.FilterVariables(f, keep).(expr.VectorOfVariables)
			switch {
			case len(kept.VIDs) == len(f.VIDs):
				// untouched
			case len(kept.VIDs) <= 1:
				s.deleteSlot(int32(sl))
				deleted++
			default:
				s.functions[sl] = expr.Function(kept).(F)
				s.sets[sl] = any(s.sets[sl]).(set.DimensionUpdatable).WithDimension(len(kept.VIDs)).(S)
				rewritten++
			}
		default:
			g := expr.FilterVariables(f, keep)
			s.functions[sl] = g.(F)
			rewritten++
		}
	}

	log := logger.Logger()
	log.Debug().Int("deleted", deleted).Int("rewritten", rewritten).Msg("variable removal cascade")
	return nil
}

// touchesFiltered reports whether any referenced variable is rejected by
// keep; the common no-op cascade then costs one bitset scan.
func (s *Store[F, S]) touchesFiltered(keep func(v expr.Variable) bool) bool {
	var vs bitset.BitSet
	s.Variables(&vs)
	for i, ok := vs.NextSet(0); ok; i, ok = vs.NextSet(i + 1) {
		if !keep(expr.Variable(i)) {
			return true
		}
	}
	return false
}

// validateGroups checks the group-constraint rule for every
// VectorOfVariables entry before any mutation happens.
func (s *Store[F, S]) validateGroups(keep func(v expr.Variable) bool) error {
	for sl := range s.functions {
		var f expr.Function = s.functions[sl]
		group, ok := f.(expr.VectorOfVariables)
		if !ok {
			return nil // a partition holds one function kind only
		}
		n := len(group.VIDs)
		removed := -1
		kept := 0
		for _, v := range group.VIDs {
			if keep(v) {
				kept++
			} else if removed < 0 {
				removed = int(v)
			}
		}
		switch {
		case kept == n || n == 1 || kept == 0:
			// untouched, single-member deletion, or whole-group deletion
		case !set.SupportsDimensionUpdate(s.sets[sl]):
			return fmt.Errorf("%w: variable %d belongs to a vector-of-variables group of dimension %d whose set %T is fixed",
				ErrDeleteNotAllowed, removed, n, s.sets[sl])
		}
	}
	return nil
}
