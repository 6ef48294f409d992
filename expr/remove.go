package expr

import "github.com/bits-and-blooms/bitset"

// RemoveVariable returns f with every term referencing v stripped, both
// slots counting for quadratic terms; a VectorOfVariables loses v from
// its list. A SingleVariable function is returned unchanged, the caller
// decides the fate of the constraint holding it.
func RemoveVariable(f Function, v Variable) Function {
	return FilterVariables(f, func(u Variable) bool { return u != v })
}

// FilterVariables returns f with every term referencing a variable
// rejected by keep stripped, under the same rules as RemoveVariable.
func FilterVariables(f Function, keep func(Variable) bool) Function {
	switch f := f.(type) {
	case SingleVariable:
		return f
	case VectorOfVariables:
		vids := make([]Variable, 0, len(f.VIDs))
		for _, v := range f.VIDs {
			if keep(v) {
				vids = append(vids, v)
			}
		}
		return VectorOfVariables{VIDs: vids}
	case ScalarAffine:
		return ScalarAffine{
			Terms:    filterAffine(f.Terms, keep),
			Constant: f.Constant,
		}
	case VectorAffine:
		return VectorAffine{
			Terms:     filterVectorAffine(f.Terms, keep),
			Constants: cloneSlice(f.Constants),
		}
	case ScalarQuadratic:
		return ScalarQuadratic{
			QuadraticTerms: filterQuadratic(f.QuadraticTerms, keep),
			AffineTerms:    filterAffine(f.AffineTerms, keep),
			Constant:       f.Constant,
		}
	case VectorQuadratic:
		return VectorQuadratic{
			QuadraticTerms: filterVectorQuadratic(f.QuadraticTerms, keep),
			AffineTerms:    filterVectorAffine(f.AffineTerms, keep),
			Constants:      cloneSlice(f.Constants),
		}
	default:
		panic("unknown function kind")
	}
}

// CollectVariables sets, for every variable referenced by f, the
// corresponding bit in vs. Bits already set are left alone, so one bitset
// can accumulate the references of a whole container.
func CollectVariables(f Function, vs *bitset.BitSet) {
	switch f := f.(type) {
	case SingleVariable:
		vs.Set(uint(f.VID))
	case VectorOfVariables:
		for _, v := range f.VIDs {
			vs.Set(uint(v))
		}
	case ScalarAffine:
		for _, t := range f.Terms {
			vs.Set(uint(t.VID))
		}
	case VectorAffine:
		for _, t := range f.Terms {
			vs.Set(uint(t.VID))
		}
	case ScalarQuadratic:
		for _, t := range f.AffineTerms {
			vs.Set(uint(t.VID))
		}
		for _, t := range f.QuadraticTerms {
			vs.Set(uint(t.VID1))
			vs.Set(uint(t.VID2))
		}
	case VectorQuadratic:
		for _, t := range f.AffineTerms {
			vs.Set(uint(t.VID))
		}
		for _, t := range f.QuadraticTerms {
			vs.Set(uint(t.VID1))
			vs.Set(uint(t.VID2))
		}
	default:
		panic("unknown function kind")
	}
}

func filterAffine(in []AffineTerm, keep func(Variable) bool) []AffineTerm {
	out := make([]AffineTerm, 0, len(in))
	for _, t := range in {
		if keep(t.VID) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterQuadratic(in []QuadraticTerm, keep func(Variable) bool) []QuadraticTerm {
	out := make([]QuadraticTerm, 0, len(in))
	for _, t := range in {
		if keep(t.VID1) && keep(t.VID2) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterVectorAffine(in []VectorAffineTerm, keep func(Variable) bool) []VectorAffineTerm {
	out := make([]VectorAffineTerm, 0, len(in))
	for _, t := range in {
		if keep(t.VID) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func filterVectorQuadratic(in []VectorQuadraticTerm, keep func(Variable) bool) []VectorQuadraticTerm {
	out := make([]VectorQuadraticTerm, 0, len(in))
	for _, t := range in {
		if keep(t.VID1) && keep(t.VID2) {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
