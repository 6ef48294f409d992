package expr

// Valuation maps a variable to its value. It is supplied by the model
// container; resolving an unknown variable is the container's failure
// mode, not this package's.
type Valuation func(v Variable) float64

// Evaluate substitutes x = v(x).
func (f SingleVariable) Evaluate(v Valuation) float64 { return v(f.VID) }

// Evaluate substitutes each listed variable.
func (f VectorOfVariables) Evaluate(v Valuation) []float64 {
	res := make([]float64, len(f.VIDs))
	for i, vid := range f.VIDs {
		res[i] = v(vid)
	}
	return res
}

// Evaluate accumulates the constant and every term contribution.
func (f ScalarAffine) Evaluate(v Valuation) float64 {
	res := f.Constant
	for _, t := range f.Terms {
		res += t.Coeff * v(t.VID)
	}
	return res
}

// Evaluate seeds the output vector with the constants, then adds each
// term's contribution at its output index.
func (f VectorAffine) Evaluate(v Valuation) []float64 {
	res := cloneSlice(f.Constants)
	for _, t := range f.Terms {
		res[t.Output] += t.Coeff * v(t.VID)
	}
	return res
}

// Evaluate accumulates the constant, the affine terms and the quadratic
// terms. A square term (both slots identical) contributes coeff * x^2 / 2.
func (f ScalarQuadratic) Evaluate(v Valuation) float64 {
	res := f.Constant
	for _, t := range f.AffineTerms {
		res += t.Coeff * v(t.VID)
	}
	for _, t := range f.QuadraticTerms {
		res += t.evaluate(v)
	}
	return res
}

// Evaluate seeds the output vector with the constants, then adds each
// affine and quadratic contribution at its output index.
func (f VectorQuadratic) Evaluate(v Valuation) []float64 {
	res := cloneSlice(f.Constants)
	for _, t := range f.AffineTerms {
		res[t.Output] += t.Coeff * v(t.VID)
	}
	for _, t := range f.QuadraticTerms {
		res[t.Output] += t.evaluate(v)
	}
	return res
}

func (t QuadraticTerm) evaluate(v Valuation) float64 {
	x, y := v(t.VID1), v(t.VID2)
	if t.VID1 == t.VID2 {
		// half factor, see QuadraticTerm
		return t.Coeff * x * y / 2
	}
	return t.Coeff * x * y
}

// Evaluate evaluates any function into the uniform vector shape; scalar
// kinds yield a slice of length 1.
func Evaluate(f Function, v Valuation) []float64 {
	switch f := f.(type) {
	case SingleVariable:
		return []float64{f.Evaluate(v)}
	case VectorOfVariables:
		return f.Evaluate(v)
	case ScalarAffine:
		return []float64{f.Evaluate(v)}
	case VectorAffine:
		return f.Evaluate(v)
	case ScalarQuadratic:
		return []float64{f.Evaluate(v)}
	case VectorQuadratic:
		return f.Evaluate(v)
	default:
		panic("unknown function kind")
	}
}
