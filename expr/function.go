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

// Function is an algebraic expression over decision variables. The family
// is closed: exactly six kinds implement it, SingleVariable,
// VectorOfVariables, ScalarAffine, VectorAffine, ScalarQuadratic and
// VectorQuadratic.
type Function interface {
	// NbOutputs returns the output dimension of the function; 1 for the
	// scalar kinds.
	NbOutputs() int

	// Clone returns a deep copy of the function.
	Clone() Function

	// String renders the function using r to name variables.
	String(r Resolver) string

	isFunction()
}

// SingleVariable is the function f(x) = x for one decision variable.
type SingleVariable struct {
	VID Variable
}

// VectorOfVariables is the vector function selecting the listed variables,
// in order. The list order is semantic and is never reordered.
type VectorOfVariables struct {
	VIDs []Variable
}

// ScalarAffine is the function c + Σ aᵢ·xᵢ.
type ScalarAffine struct {
	Terms    []AffineTerm
	Constant float64
}

// VectorAffine stacks affine rows; each term contributes to the output row
// given by its Output index, and Constants seeds the output vector.
type VectorAffine struct {
	Terms     []VectorAffineTerm
	Constants []float64
}

// ScalarQuadratic is the function c + Σ aᵢ·xᵢ + Σ qᵢ·xᵢ·yᵢ, with the
// half-factor convention of QuadraticTerm for squares.
type ScalarQuadratic struct {
	QuadraticTerms []QuadraticTerm
	AffineTerms    []AffineTerm
	Constant       float64
}

// VectorQuadratic stacks quadratic rows.
type VectorQuadratic struct {
	QuadraticTerms []VectorQuadraticTerm
	AffineTerms    []VectorAffineTerm
	Constants      []float64
}

func (SingleVariable) isFunction()    {}
func (VectorOfVariables) isFunction() {}
func (ScalarAffine) isFunction()      {}
func (VectorAffine) isFunction()      {}
func (ScalarQuadratic) isFunction()   {}
func (VectorQuadratic) isFunction()   {}

func (f SingleVariable) NbOutputs() int    { return 1 }
func (f VectorOfVariables) NbOutputs() int { return len(f.VIDs) }
func (f ScalarAffine) NbOutputs() int      { return 1 }
func (f VectorAffine) NbOutputs() int      { return len(f.Constants) }
func (f ScalarQuadratic) NbOutputs() int   { return 1 }
func (f VectorQuadratic) NbOutputs() int   { return len(f.Constants) }

// Clone returns a deep copy of the function.
func (f SingleVariable) Clone() Function { return f }

// Clone returns a deep copy of the underlying variable list.
func (f VectorOfVariables) Clone() Function {
	return VectorOfVariables{VIDs: cloneSlice(f.VIDs)}
}

// Clone returns a deep copy of the underlying term list.
func (f ScalarAffine) Clone() Function {
	return ScalarAffine{Terms: cloneSlice(f.Terms), Constant: f.Constant}
}

func (f VectorAffine) Clone() Function {
	return VectorAffine{Terms: cloneSlice(f.Terms), Constants: cloneSlice(f.Constants)}
}

func (f ScalarQuadratic) Clone() Function {
	return ScalarQuadratic{
		QuadraticTerms: cloneSlice(f.QuadraticTerms),
		AffineTerms:    cloneSlice(f.AffineTerms),
		Constant:       f.Constant,
	}
}

func (f VectorQuadratic) Clone() Function {
	return VectorQuadratic{
		QuadraticTerms: cloneSlice(f.QuadraticTerms),
		AffineTerms:    cloneSlice(f.AffineTerms),
		Constants:      cloneSlice(f.Constants),
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	res := make([]T, len(s))
	copy(res, s)
	return res
}
