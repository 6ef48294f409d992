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

import "golang.org/x/exp/slices"

// Canonical returns f in canonical form: terms sorted ascending by
// (output index, variable[, second variable]), terms with equal keys
// merged by summing their coefficients, and terms whose coefficient is
// exactly zero dropped, including zeros produced by a merge. Quadratic
// variable pairs are normalized first so that VID1 <= VID2. Constants are
// left untouched.
//
// Two functions representing the same map over the same term set share a
// single canonical form, so canonical values can be compared structurally.
// The input is never modified; cost is O(n log n) in the term count.
func Canonical(f Function) Function {
	switch f := f.(type) {
	case SingleVariable:
		return f
	case VectorOfVariables:
		// the variable list order is semantic, nothing to normalize
		return f.Clone()
	case ScalarAffine:
		return ScalarAffine{
			Terms:    canonicalAffine(f.Terms),
			Constant: f.Constant,
		}
	case VectorAffine:
		return VectorAffine{
			Terms:     canonicalVectorAffine(f.Terms),
			Constants: cloneSlice(f.Constants),
		}
	case ScalarQuadratic:
		return ScalarQuadratic{
			QuadraticTerms: canonicalQuadratic(f.QuadraticTerms),
			AffineTerms:    canonicalAffine(f.AffineTerms),
			Constant:       f.Constant,
		}
	case VectorQuadratic:
		return VectorQuadratic{
			QuadraticTerms: canonicalVectorQuadratic(f.QuadraticTerms),
			AffineTerms:    canonicalVectorAffine(f.AffineTerms),
			Constants:      cloneSlice(f.Constants),
		}
	default:
		panic("unknown function kind")
	}
}

// IsCanonical reports whether f already is its own canonical form.
func IsCanonical(f Function) bool {
	switch f := f.(type) {
	case SingleVariable, VectorOfVariables:
		return true
	case ScalarAffine:
		return isCanonicalAffine(f.Terms)
	case VectorAffine:
		return isCanonicalVectorAffine(f.Terms)
	case ScalarQuadratic:
		return isCanonicalQuadratic(f.QuadraticTerms) && isCanonicalAffine(f.AffineTerms)
	case VectorQuadratic:
		return isCanonicalVectorQuadratic(f.QuadraticTerms) && isCanonicalVectorAffine(f.AffineTerms)
	default:
		panic("unknown function kind")
	}
}

func lessAffine(a, b AffineTerm) bool { return a.VID < b.VID }

func lessQuadratic(a, b QuadraticTerm) bool {
	if a.VID1 != b.VID1 {
		return a.VID1 < b.VID1
	}
	return a.VID2 < b.VID2
}

func lessVectorAffine(a, b VectorAffineTerm) bool {
	if a.Output != b.Output {
		return a.Output < b.Output
	}
	return a.VID < b.VID
}

func lessVectorQuadratic(a, b VectorQuadraticTerm) bool {
	if a.Output != b.Output {
		return a.Output < b.Output
	}
	return lessQuadratic(a.QuadraticTerm, b.QuadraticTerm)
}

func canonicalAffine(in []AffineTerm) []AffineTerm {
	terms := cloneSlice(in)
	slices.SortStableFunc(terms, lessAffine)
	out := terms[:0]
	for _, t := range terms {
		switch {
		case len(out) > 0 && out[len(out)-1].VID == t.VID:
			out[len(out)-1].Coeff += t.Coeff
		case len(out) > 0 && out[len(out)-1].Coeff == 0:
			out[len(out)-1] = t
		default:
			out = append(out, t)
		}
	}
	return dropTrailingZero(out, func(t AffineTerm) bool { return t.Coeff == 0 })
}

func canonicalQuadratic(in []QuadraticTerm) []QuadraticTerm {
	terms := make([]QuadraticTerm, len(in))
	for i, t := range in {
		terms[i] = t.normalize()
	}
	slices.SortStableFunc(terms, lessQuadratic)
	out := terms[:0]
	for _, t := range terms {
		switch {
		case len(out) > 0 && out[len(out)-1].VID1 == t.VID1 && out[len(out)-1].VID2 == t.VID2:
			out[len(out)-1].Coeff += t.Coeff
		case len(out) > 0 && out[len(out)-1].Coeff == 0:
			out[len(out)-1] = t
		default:
			out = append(out, t)
		}
	}
	return dropTrailingZero(out, func(t QuadraticTerm) bool { return t.Coeff == 0 })
}

func canonicalVectorAffine(in []VectorAffineTerm) []VectorAffineTerm {
	terms := cloneSlice(in)
	slices.SortStableFunc(terms, lessVectorAffine)
	out := terms[:0]
	for _, t := range terms {
		switch {
		case len(out) > 0 && out[len(out)-1].Output == t.Output && out[len(out)-1].VID == t.VID:
			out[len(out)-1].Coeff += t.Coeff
		case len(out) > 0 && out[len(out)-1].Coeff == 0:
			out[len(out)-1] = t
		default:
			out = append(out, t)
		}
	}
	return dropTrailingZero(out, func(t VectorAffineTerm) bool { return t.Coeff == 0 })
}

func canonicalVectorQuadratic(in []VectorQuadraticTerm) []VectorQuadraticTerm {
	terms := make([]VectorQuadraticTerm, len(in))
	for i, t := range in {
		t.QuadraticTerm = t.QuadraticTerm.normalize()
		terms[i] = t
	}
	slices.SortStableFunc(terms, lessVectorQuadratic)
	out := terms[:0]
	for _, t := range terms {
		switch {
		case len(out) > 0 && out[len(out)-1].Output == t.Output &&
			out[len(out)-1].VID1 == t.VID1 && out[len(out)-1].VID2 == t.VID2:
			out[len(out)-1].Coeff += t.Coeff
		case len(out) > 0 && out[len(out)-1].Coeff == 0:
			out[len(out)-1] = t
		default:
			out = append(out, t)
		}
	}
	return dropTrailingZero(out, func(t VectorQuadraticTerm) bool { return t.Coeff == 0 })
}

func dropTrailingZero[T any](terms []T, isZero func(T) bool) []T {
	if len(terms) > 0 && isZero(terms[len(terms)-1]) {
		terms = terms[:len(terms)-1]
	}
	if len(terms) == 0 {
		return nil
	}
	return terms
}

func isCanonicalAffine(terms []AffineTerm) bool {
	for i, t := range terms {
		if t.Coeff == 0 {
			return false
		}
		if i > 0 && !lessAffine(terms[i-1], t) {
			return false
		}
	}
	return true
}

func isCanonicalQuadratic(terms []QuadraticTerm) bool {
	for i, t := range terms {
		if t.Coeff == 0 || t.VID1 > t.VID2 {
			return false
		}
		if i > 0 && !lessQuadratic(terms[i-1], t) {
			return false
		}
	}
	return true
}

func isCanonicalVectorAffine(terms []VectorAffineTerm) bool {
	for i, t := range terms {
		if t.Coeff == 0 {
			return false
		}
		if i > 0 && !lessVectorAffine(terms[i-1], t) {
			return false
		}
	}
	return true
}

func isCanonicalVectorQuadratic(terms []VectorQuadraticTerm) bool {
	for i, t := range terms {
		if t.Coeff == 0 || t.VID1 > t.VID2 {
			return false
		}
		if i > 0 && !lessVectorQuadratic(terms[i-1], t) {
			return false
		}
	}
	return true
}
