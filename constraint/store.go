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
	"errors"
	"fmt"

	"github.com/optkit/optkit/debug"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/profile"
	"github.com/optkit/optkit/set"
)

var (
	// ErrInvalidIndex reports an index that was never issued by the
	// partition, or was deleted from it.
	ErrInvalidIndex = errors.New("invalid constraint index")

	// ErrTypeMismatch reports a function or set whose dynamic kind does
	// not match the partition's declared kinds.
	ErrTypeMismatch = errors.New("constraint type mismatch")

	// ErrDeleteNotAllowed reports a variable removal that would corrupt a
	// fixed-dimension group constraint.
	ErrDeleteNotAllowed = errors.New("delete not allowed")
)

// Index references one constraint inside a Store[F, S]. The function and
// set kinds are part of the index type, so an index cannot cross to a
// partition of another kind pair. Within its partition an index is
// assigned monotonically and is never reissued once deleted.
type Index[F expr.Function, S set.Set] uint32

// Store is an ordered collection of (function, set) pairs of one fixed
// kind pair, preserving insertion order modulo deletions.
//
// Lookups vastly outnumber deletions in a model's lifecycle, so the store
// avoids hashing entirely: functions and sets live in dense backing
// arrays addressed through a stable index -> slot translation table. A
// deletion compacts the backing arrays and rewrites the translation
// entries at or after the removed slot; its cost is carried by this
// partition's own deletions, never by a global rehash. The translation
// table only ever grows, which is the price of never recycling an index.
type Store[F expr.Function, S set.Set] struct {
	functions []F
	sets      []S
	indices   []Index[F, S] // slot -> index, insertion order
	slots     []int32       // index -> slot, -1 once deleted
}

// StoreOption configures a Store at construction.
type StoreOption func(*storeConfig)

type storeConfig struct {
	capacity int
}

// WithCapacity preallocates room for n constraints.
func WithCapacity(n int) StoreOption {
	return func(c *storeConfig) { c.capacity = n }
}

// NewStore returns an empty partition for the (F, S) kind pair.
func NewStore[F expr.Function, S set.Set](opts ...StoreOption) *Store[F, S] {
	var cfg storeConfig
	for _, o := range opts {
		o(&cfg)
	}
	return &Store[F, S]{
		functions: make([]F, 0, cfg.capacity),
		sets:      make([]S, 0, cfg.capacity),
		indices:   make([]Index[F, S], 0, cfg.capacity),
		slots:     make([]int32, 0, cfg.capacity),
	}
}

// Add stores the pair and returns its index. The store keeps a private
// copy of f, later mutations of the caller's slices are not observed.
func (s *Store[F, S]) Add(f F, st S) Index[F, S] {
	profile.RecordConstraint()

	idx := Index[F, S](len(s.slots))
	s.slots = append(s.slots, int32(len(s.functions)))
	s.functions = append(s.functions, f.Clone().(F))
	s.sets = append(s.sets, st)
	s.indices = append(s.indices, idx)
	return idx
}

// Function returns a copy of the function stored at i.
func (s *Store[F, S]) Function(i Index[F, S]) (F, error) {
	sl, err := s.slot(i)
	if err != nil {
		var zero F
		return zero, err
	}
	return s.functions[sl].Clone().(F), nil
}

// Set returns the set stored at i.
func (s *Store[F, S]) Set(i Index[F, S]) (S, error) {
	sl, err := s.slot(i)
	if err != nil {
		var zero S
		return zero, err
	}
	return s.sets[sl], nil
}

// Modify applies m to the function stored at i. On failure the stored
// function is left untouched.
func (s *Store[F, S]) Modify(i Index[F, S], m expr.Modification) error {
	sl, err := s.slot(i)
	if err != nil {
		return err
	}
	g, err := expr.Apply(s.functions[sl], m)
	if err != nil {
		return err
	}
	s.functions[sl] = g.(F)
	return nil
}

// Delete removes the constraint at i. Every later operation on i fails
// with ErrInvalidIndex; all other indices stay valid.
func (s *Store[F, S]) Delete(i Index[F, S]) error {
	sl, err := s.slot(i)
	if err != nil {
		return err
	}
	s.deleteSlot(sl)
	return nil
}

// Indices returns a snapshot of the valid indices, in insertion order.
func (s *Store[F, S]) Indices() []Index[F, S] {
	out := make([]Index[F, S], len(s.indices))
	copy(out, s.indices)
	return out
}

// NbConstraints returns the number of stored constraints.
func (s *Store[F, S]) NbConstraints() int { return len(s.functions) }

// Clear deletes every constraint. Previously issued indices stay invalid
// for the lifetime of the store.
func (s *Store[F, S]) Clear() {
	for _, idx := range s.indices {
		s.slots[idx] = -1
	}
	s.functions = s.functions[:0]
	s.sets = s.sets[:0]
	s.indices = s.indices[:0]
}

func (s *Store[F, S]) slot(i Index[F, S]) (int32, error) {
	if int(i) >= len(s.slots) {
		return -1, fmt.Errorf("%w: %d was never issued by this partition", ErrInvalidIndex, i)
	}
	sl := s.slots[i]
	if sl < 0 {
		return -1, fmt.Errorf("%w: %d was deleted", ErrInvalidIndex, i)
	}
	return sl, nil
}

func (s *Store[F, S]) deleteSlot(sl int32) {
	s.slots[s.indices[sl]] = -1
	s.functions = append(s.functions[:sl], s.functions[sl+1:]...)
	s.sets = append(s.sets[:sl], s.sets[sl+1:]...)
	s.indices = append(s.indices[:sl], s.indices[sl+1:]...)
	for j := int(sl); j < len(s.indices); j++ {
		s.slots[s.indices[j]] = int32(j)
	}

	if debug.Debug {
		if len(s.functions) != len(s.sets) || len(s.functions) != len(s.indices) {
			panic("internal error: backing arrays out of sync")
		}
	}
}
