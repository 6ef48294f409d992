package expr

import (
	"strconv"
	"strings"
)

// Resolver allows pretty printing of functions.
type Resolver interface {
	VariableToString(v Variable) string
}

// MapResolver resolves variable names through a map, falling back to
// v<id> for unnamed variables.
type MapResolver map[Variable]string

func (m MapResolver) VariableToString(v Variable) string {
	if s, ok := m[v]; ok {
		return s
	}
	return "v" + strconv.Itoa(int(v))
}

// StringBuilder is a helper to build strings from functions or terms. It
// embeds a strings.Builder object for convenience.
type StringBuilder struct {
	strings.Builder
	Resolver
}

// NewStringBuilder returns a new StringBuilder.
func NewStringBuilder(r Resolver) *StringBuilder {
	return &StringBuilder{Resolver: r}
}

// WriteTerm appends the affine term to the current buffer
func (sbb *StringBuilder) WriteTerm(t AffineTerm) {
	if t.Coeff == 0 {
		sbb.WriteByte('0')
		return
	}
	vs := sbb.VariableToString(t.VID)
	if t.Coeff == 1 {
		sbb.WriteString(vs)
		return
	}
	sbb.WriteString(formatCoeff(t.Coeff))
	sbb.WriteString("⋅")
	sbb.WriteString(vs)
}

// WriteQuadraticTerm appends the quadratic term to the current buffer
func (sbb *StringBuilder) WriteQuadraticTerm(t QuadraticTerm) {
	if t.Coeff == 0 {
		sbb.WriteByte('0')
		return
	}
	if t.Coeff != 1 {
		sbb.WriteString(formatCoeff(t.Coeff))
		sbb.WriteString("⋅")
	}
	sbb.WriteByte('(')
	sbb.WriteString(sbb.VariableToString(t.VID1))
	sbb.WriteString("×")
	sbb.WriteString(sbb.VariableToString(t.VID2))
	sbb.WriteByte(')')
}

func formatCoeff(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

func (sbb *StringBuilder) writeScalarAffine(terms []AffineTerm, constant float64) {
	for i, t := range terms {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		sbb.WriteTerm(t)
	}
	if constant != 0 || len(terms) == 0 {
		if len(terms) > 0 {
			sbb.WriteString(" + ")
		}
		sbb.WriteString(formatCoeff(constant))
	}
}

func (sbb *StringBuilder) writeScalarQuadratic(qterms []QuadraticTerm, aterms []AffineTerm, constant float64) {
	for i, t := range qterms {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		sbb.WriteQuadraticTerm(t)
	}
	if len(aterms) > 0 || constant != 0 || len(qterms) == 0 {
		if len(qterms) > 0 {
			sbb.WriteString(" + ")
		}
		sbb.writeScalarAffine(aterms, constant)
	}
}

func (f SingleVariable) String(r Resolver) string {
	return r.VariableToString(f.VID)
}

func (f VectorOfVariables) String(r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.WriteByte('[')
	for i, v := range f.VIDs {
		if i > 0 {
			sbb.WriteString(", ")
		}
		sbb.WriteString(sbb.VariableToString(v))
	}
	sbb.WriteByte(']')
	return sbb.Builder.String()
}

func (f ScalarAffine) String(r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.writeScalarAffine(f.Terms, f.Constant)
	return sbb.Builder.String()
}

func (f ScalarQuadratic) String(r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.writeScalarQuadratic(f.QuadraticTerms, f.AffineTerms, f.Constant)
	return sbb.Builder.String()
}

// String renders one row per line.
func (f VectorAffine) String(r Resolver) string {
	return vectorString(f, r)
}

// String renders one row per line.
func (f VectorQuadratic) String(r Resolver) string {
	return vectorString(f, r)
}

func vectorString(f Function, r Resolver) string {
	sbb := NewStringBuilder(r)
	sbb.WriteByte('[')
	it := ScalarsOf(f).Iterator()
	first := true
	for g := it.Next(); g != nil; g = it.Next() {
		if !first {
			sbb.WriteString("; ")
		}
		first = false
		sbb.WriteString(g.String(r))
	}
	sbb.WriteByte(']')
	return sbb.Builder.String()
}
