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

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModification is returned by Apply when a modification
// does not target the supplied function's kind.
var ErrUnsupportedModification = errors.New("unsupported modification")

// Modification describes a delta applicable to a stored function without
// reconstructing it. The family is closed: SetConstant,
// SetVectorConstant, SetCoefficient and SetVectorCoefficients.
type Modification interface {
	isModification()
}

// SetConstant replaces the constant of a scalar function wholesale.
type SetConstant struct {
	Value float64
}

// SetVectorConstant replaces the constant vector of a vector function
// wholesale. The replacement must have the function's output dimension.
type SetVectorConstant struct {
	Values []float64
}

// SetCoefficient replaces the affine coefficient of one variable in a
// scalar function. If the variable is absent and Coeff is non-zero a term
// is inserted; a zero Coeff removes the term; otherwise the first existing
// term is updated in place and stale duplicates are dropped.
type SetCoefficient struct {
	VID   Variable
	Coeff float64
}

// RowCoefficient pairs an output row with a replacement coefficient.
type RowCoefficient struct {
	Row   uint32
	Coeff float64
}

// SetVectorCoefficients replaces the affine coefficient of one variable on
// the listed rows of a vector function, with SetCoefficient semantics per
// row. Rows not listed are untouched.
type SetVectorCoefficients struct {
	VID  Variable
	Rows []RowCoefficient
}

func (SetConstant) isModification()           {}
func (SetVectorConstant) isModification()     {}
func (SetCoefficient) isModification()        {}
func (SetVectorCoefficients) isModification() {}

// Apply returns a copy of f with m applied. f itself is never modified,
// so a failed call has no observable effect. Apply fails with
// ErrUnsupportedModification when the command targets a different
// function shape than f's.
func Apply(f Function, m Modification) (Function, error) {
	switch m := m.(type) {
	case SetConstant:
		switch f := f.(type) {
		case ScalarAffine:
			g := f.Clone().(ScalarAffine)
			g.Constant = m.Value
			return g, nil
		case ScalarQuadratic:
			g := f.Clone().(ScalarQuadratic)
			g.Constant = m.Value
			return g, nil
		}
	case SetVectorConstant:
		switch f := f.(type) {
		case VectorAffine:
			if len(m.Values) != f.NbOutputs() {
				return nil, fmt.Errorf("%w: replacement constant has dimension %d, function has %d",
					ErrUnsupportedModification, len(m.Values), f.NbOutputs())
			}
			g := f.Clone().(VectorAffine)
			g.Constants = cloneSlice(m.Values)
			return g, nil
		case VectorQuadratic:
			if len(m.Values) != f.NbOutputs() {
				return nil, fmt.Errorf("%w: replacement constant has dimension %d, function has %d",
					ErrUnsupportedModification, len(m.Values), f.NbOutputs())
			}
			g := f.Clone().(VectorQuadratic)
			g.Constants = cloneSlice(m.Values)
			return g, nil
		}
	case SetCoefficient:
		switch f := f.(type) {
		case ScalarAffine:
			g := f.Clone().(ScalarAffine)
			g.Terms = setCoefficient(g.Terms, m.VID, m.Coeff)
			return g, nil
		case ScalarQuadratic:
			g := f.Clone().(ScalarQuadratic)
			g.AffineTerms = setCoefficient(g.AffineTerms, m.VID, m.Coeff)
			return g, nil
		}
	case SetVectorCoefficients:
		switch f := f.(type) {
		case VectorAffine:
			rows, err := checkRows(m.Rows, f.NbOutputs())
			if err != nil {
				return nil, err
			}
			g := f.Clone().(VectorAffine)
			g.Terms = setRowCoefficients(g.Terms, m.VID, m.Rows, rows)
			return g, nil
		case VectorQuadratic:
			rows, err := checkRows(m.Rows, f.NbOutputs())
			if err != nil {
				return nil, err
			}
			g := f.Clone().(VectorQuadratic)
			g.AffineTerms = setRowCoefficients(g.AffineTerms, m.VID, m.Rows, rows)
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot apply %T to %T", ErrUnsupportedModification, m, f)
}

// setCoefficient rewrites the coefficient of vid in terms; the first
// occurrence is updated (or removed when c == 0), any stale duplicate is
// dropped, and a missing variable with c != 0 is appended.
func setCoefficient(terms []AffineTerm, vid Variable, c float64) []AffineTerm {
	out := terms[:0]
	seen := false
	for _, t := range terms {
		if t.VID == vid {
			if !seen && c != 0 {
				t.Coeff = c
				out = append(out, t)
			}
			seen = true
			continue
		}
		out = append(out, t)
	}
	if !seen && c != 0 {
		out = append(out, AffineTerm{Coeff: c, VID: vid})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func checkRows(rows []RowCoefficient, dim int) (map[uint32]float64, error) {
	m := make(map[uint32]float64, len(rows))
	for _, r := range rows {
		if int(r.Row) >= dim {
			return nil, fmt.Errorf("%w: row %d out of range for dimension %d",
				ErrUnsupportedModification, r.Row, dim)
		}
		m[r.Row] = r.Coeff
	}
	return m, nil
}

// setRowCoefficients applies SetCoefficient semantics to the listed rows
// only. rowOrder preserves the caller's listing order for inserted terms.
func setRowCoefficients(terms []VectorAffineTerm, vid Variable, rowOrder []RowCoefficient, rows map[uint32]float64) []VectorAffineTerm {
	out := terms[:0]
	seen := make(map[uint32]bool, len(rows))
	for _, t := range terms {
		if t.VID == vid {
			if c, listed := rows[t.Output]; listed {
				if !seen[t.Output] && c != 0 {
					t.Coeff = c
					out = append(out, t)
				}
				seen[t.Output] = true
				continue
			}
		}
		out = append(out, t)
	}
	for _, r := range rowOrder {
		if !seen[r.Row] && r.Coeff != 0 {
			out = append(out, VectorAffineTerm{Output: r.Row, AffineTerm: AffineTerm{Coeff: r.Coeff, VID: vid}})
			seen[r.Row] = true
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
