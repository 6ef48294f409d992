package expr

import "fmt"

// Concat stacks affine-representable functions vertically into a single
// VectorAffine. The output indices of each input are offset by the total
// dimension of the preceding inputs and the constant vectors are
// concatenated, so the result dimension is the sum of the input
// dimensions. Quadratic inputs cannot be stacked and fail.
func Concat(fs ...Function) (VectorAffine, error) {
	var res VectorAffine
	for _, f := range fs {
		va, err := vectorAffineOf(f)
		if err != nil {
			return VectorAffine{}, err
		}
		offset := uint32(len(res.Constants))
		for _, t := range va.Terms {
			t.Output += offset
			res.Terms = append(res.Terms, t)
		}
		res.Constants = append(res.Constants, va.Constants...)
	}
	return res, nil
}

func vectorAffineOf(f Function) (VectorAffine, error) {
	switch f := f.(type) {
	case SingleVariable, VectorOfVariables, ScalarAffine:
		return Vectorize(AsAffine(f)).(VectorAffine), nil
	case VectorAffine:
		return f, nil
	default:
		return VectorAffine{}, fmt.Errorf("cannot stack %T into an affine vector", f)
	}
}

// Vectorize lifts a scalar function to its vector counterpart of
// dimension 1. Vector functions are returned unchanged.
func Vectorize(f Function) Function {
	switch f := f.(type) {
	case SingleVariable:
		return VectorOfVariables{VIDs: []Variable{f.VID}}
	case ScalarAffine:
		terms := make([]VectorAffineTerm, len(f.Terms))
		for i, t := range f.Terms {
			terms[i] = VectorAffineTerm{AffineTerm: t}
		}
		return VectorAffine{Terms: terms, Constants: []float64{f.Constant}}
	case ScalarQuadratic:
		qterms := make([]VectorQuadraticTerm, len(f.QuadraticTerms))
		for i, t := range f.QuadraticTerms {
			qterms[i] = VectorQuadraticTerm{QuadraticTerm: t}
		}
		aterms := make([]VectorAffineTerm, len(f.AffineTerms))
		for i, t := range f.AffineTerms {
			aterms[i] = VectorAffineTerm{AffineTerm: t}
		}
		return VectorQuadratic{QuadraticTerms: qterms, AffineTerms: aterms, Constants: []float64{f.Constant}}
	default:
		return f
	}
}

// AsAffine rewrites a bare variable function as its unit-coefficient
// affine equivalent. Other kinds are returned unchanged.
func AsAffine(f Function) Function {
	switch f := f.(type) {
	case SingleVariable:
		return ScalarAffine{Terms: []AffineTerm{{Coeff: 1, VID: f.VID}}}
	case VectorOfVariables:
		terms := make([]VectorAffineTerm, len(f.VIDs))
		for i, v := range f.VIDs {
			terms[i] = VectorAffineTerm{Output: uint32(i), AffineTerm: AffineTerm{Coeff: 1, VID: v}}
		}
		return VectorAffine{Terms: terms, Constants: make([]float64, len(f.VIDs))}
	default:
		return f
	}
}
