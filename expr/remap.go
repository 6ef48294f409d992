package expr

// Remap returns a structurally identical function with every variable
// reference replaced through rename. It is the bridge between two
// independently indexed models.
func Remap(f Function, rename func(Variable) Variable) Function {
	switch f := f.(type) {
	case SingleVariable:
		return SingleVariable{VID: rename(f.VID)}
	case VectorOfVariables:
		vids := make([]Variable, len(f.VIDs))
		for i, v := range f.VIDs {
			vids[i] = rename(v)
		}
		return VectorOfVariables{VIDs: vids}
	case ScalarAffine:
		return ScalarAffine{
			Terms:    remapAffine(f.Terms, rename),
			Constant: f.Constant,
		}
	case VectorAffine:
		return VectorAffine{
			Terms:     remapVectorAffine(f.Terms, rename),
			Constants: cloneSlice(f.Constants),
		}
	case ScalarQuadratic:
		return ScalarQuadratic{
			QuadraticTerms: remapQuadratic(f.QuadraticTerms, rename),
			AffineTerms:    remapAffine(f.AffineTerms, rename),
			Constant:       f.Constant,
		}
	case VectorQuadratic:
		return VectorQuadratic{
			QuadraticTerms: remapVectorQuadratic(f.QuadraticTerms, rename),
			AffineTerms:    remapVectorAffine(f.AffineTerms, rename),
			Constants:      cloneSlice(f.Constants),
		}
	default:
		panic("unknown function kind")
	}
}

func remapAffine(in []AffineTerm, rename func(Variable) Variable) []AffineTerm {
	out := make([]AffineTerm, len(in))
	for i, t := range in {
		t.VID = rename(t.VID)
		out[i] = t
	}
	return out
}

func remapQuadratic(in []QuadraticTerm, rename func(Variable) Variable) []QuadraticTerm {
	out := make([]QuadraticTerm, len(in))
	for i, t := range in {
		t.VID1 = rename(t.VID1)
		t.VID2 = rename(t.VID2)
		out[i] = t
	}
	return out
}

func remapVectorAffine(in []VectorAffineTerm, rename func(Variable) Variable) []VectorAffineTerm {
	out := make([]VectorAffineTerm, len(in))
	for i, t := range in {
		t.VID = rename(t.VID)
		out[i] = t
	}
	return out
}

func remapVectorQuadratic(in []VectorQuadraticTerm, rename func(Variable) Variable) []VectorQuadraticTerm {
	out := make([]VectorQuadraticTerm, len(in))
	for i, t := range in {
		t.VID1 = rename(t.VID1)
		t.VID2 = rename(t.VID2)
		out[i] = t
	}
	return out
}
