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

// Package set defines the sets a constraint function can be restricted
// to, together with the capability queries the storage layer relies on.
//
// Unlike expr.Function the family is open: a model may define its own set
// kinds, as long as they report a dimension.
package set

// Set is a subset of R^dim that a constrained function takes values in.
type Set interface {
	// Dimension returns the output dimension a constrained function must
	// have; 1 for scalar sets.
	Dimension() int
}

// DimensionUpdatable is implemented by vector sets whose dimension may
// change after construction, typically when a constrained variable is
// removed from the model.
type DimensionUpdatable interface {
	Set

	// WithDimension returns a copy of the set with the given dimension.
	WithDimension(dim int) Set
}

// SupportsDimensionUpdate reports whether s accepts dimension changes.
func SupportsDimensionUpdate(s Set) bool {
	_, ok := s.(DimensionUpdatable)
	return ok
}

// EqualTo fixes a scalar function to a value: f == Value.
type EqualTo struct {
	Value float64
}

// LessThan bounds a scalar function from above: f <= Upper.
type LessThan struct {
	Upper float64
}

// GreaterThan bounds a scalar function from below: f >= Lower.
type GreaterThan struct {
	Lower float64
}

// Interval bounds a scalar function on both sides: Lower <= f <= Upper.
type Interval struct {
	Lower, Upper float64
}

func (EqualTo) Dimension() int     { return 1 }
func (LessThan) Dimension() int    { return 1 }
func (GreaterThan) Dimension() int { return 1 }
func (Interval) Dimension() int    { return 1 }

// Reals is the full space R^Dim.
type Reals struct {
	Dim int
}

// Zeros is the origin of R^Dim: every output == 0.
type Zeros struct {
	Dim int
}

// Nonnegatives is the nonnegative orthant of R^Dim.
type Nonnegatives struct {
	Dim int
}

// Nonpositives is the nonpositive orthant of R^Dim.
type Nonpositives struct {
	Dim int
}

func (s Reals) Dimension() int        { return s.Dim }
func (s Zeros) Dimension() int        { return s.Dim }
func (s Nonnegatives) Dimension() int { return s.Dim }
func (s Nonpositives) Dimension() int { return s.Dim }

func (s Reals) WithDimension(dim int) Set        { return Reals{Dim: dim} }
func (s Zeros) WithDimension(dim int) Set        { return Zeros{Dim: dim} }
func (s Nonnegatives) WithDimension(dim int) Set { return Nonnegatives{Dim: dim} }
func (s Nonpositives) WithDimension(dim int) Set { return Nonpositives{Dim: dim} }

// SecondOrderCone is {(t, x) in R^Dim : ||x|| <= t}. The leading output
// plays a distinguished role, so the cone does not support dimension
// updates.
type SecondOrderCone struct {
	Dim int
}

func (s SecondOrderCone) Dimension() int { return s.Dim }
