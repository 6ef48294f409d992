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

package expr

// Variable is an opaque handle to a decision variable. Handles are
// allocated by the model container owning the variables; this package only
// ever compares them by value. A removed variable's handle is invalidated,
// never recycled.
type Variable uint32

// AffineTerm represents a coeff * variable contribution to a function.
type AffineTerm struct {
	Coeff float64
	VID   Variable
}

// QuadraticTerm represents a coeff * vid1 * vid2 contribution. The pair is
// unordered: (c, x, y) and (c, y, x) denote the same term. When both slots
// reference the same variable the term contributes coeff * x^2 / 2, so
// that summing all terms reproduces the standard quadratic form.
type QuadraticTerm struct {
	Coeff      float64
	VID1, VID2 Variable
}

// VectorAffineTerm attaches an affine term to one output of a vector
// function.
type VectorAffineTerm struct {
	Output uint32
	AffineTerm
}

// VectorQuadraticTerm attaches a quadratic term to one output of a vector
// function.
type VectorQuadraticTerm struct {
	Output uint32
	QuadraticTerm
}

// normalize orders the variable pair so that VID1 <= VID2.
func (t QuadraticTerm) normalize() QuadraticTerm {
	if t.VID1 > t.VID2 {
		t.VID1, t.VID2 = t.VID2, t.VID1
	}
	return t
}
