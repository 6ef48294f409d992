package expr

// Scalars is a positional view over the scalar elements of a vector
// function: element i collects exactly the contributions whose output
// index is i. A scalar function is first lifted to dimension 1.
//
// The view reads the function it was built from; it must not outlive
// mutations of that function.
type Scalars struct {
	f Function
}

// ScalarsOf returns the scalar view of f.
func ScalarsOf(f Function) Scalars {
	return Scalars{f: Vectorize(f)}
}

// Len returns the number of scalar elements.
func (s Scalars) Len() int { return s.f.NbOutputs() }

// At returns scalar element i. For a VectorOfVariables element i is
// SingleVariable(VIDs[i]).
func (s Scalars) At(i int) Function {
	switch f := s.f.(type) {
	case VectorOfVariables:
		return SingleVariable{VID: f.VIDs[i]}
	case VectorAffine:
		out := ScalarAffine{Constant: f.Constants[i]}
		for _, t := range f.Terms {
			if int(t.Output) == i {
				out.Terms = append(out.Terms, t.AffineTerm)
			}
		}
		return out
	case VectorQuadratic:
		out := ScalarQuadratic{Constant: f.Constants[i]}
		for _, t := range f.QuadraticTerms {
			if int(t.Output) == i {
				out.QuadraticTerms = append(out.QuadraticTerms, t.QuadraticTerm)
			}
		}
		for _, t := range f.AffineTerms {
			if int(t.Output) == i {
				out.AffineTerms = append(out.AffineTerms, t.AffineTerm)
			}
		}
		return out
	default:
		panic("unknown vector function kind")
	}
}

// Select projects the view onto the listed rows, renumbering each output
// index to its position within rows. rows must be strictly increasing.
func (s Scalars) Select(rows []int) Function {
	pos := make(map[uint32]uint32, len(rows))
	for i, r := range rows {
		pos[uint32(r)] = uint32(i)
	}
	switch f := s.f.(type) {
	case VectorOfVariables:
		vids := make([]Variable, len(rows))
		for i, r := range rows {
			vids[i] = f.VIDs[r]
		}
		return VectorOfVariables{VIDs: vids}
	case VectorAffine:
		out := VectorAffine{Constants: make([]float64, len(rows))}
		for i, r := range rows {
			out.Constants[i] = f.Constants[r]
		}
		for _, t := range f.Terms {
			if p, ok := pos[t.Output]; ok {
				t.Output = p
				out.Terms = append(out.Terms, t)
			}
		}
		return out
	case VectorQuadratic:
		out := VectorQuadratic{Constants: make([]float64, len(rows))}
		for i, r := range rows {
			out.Constants[i] = f.Constants[r]
		}
		for _, t := range f.QuadraticTerms {
			if p, ok := pos[t.Output]; ok {
				t.Output = p
				out.QuadraticTerms = append(out.QuadraticTerms, t)
			}
		}
		for _, t := range f.AffineTerms {
			if p, ok := pos[t.Output]; ok {
				t.Output = p
				out.AffineTerms = append(out.AffineTerms, t)
			}
		}
		return out
	default:
		panic("unknown vector function kind")
	}
}

// Iterator returns a restartable iterator over the scalar elements.
func (s Scalars) Iterator() *ScalarIterator {
	return &ScalarIterator{s: s}
}

// ScalarIterator iterates the scalar elements of a vector function in
// output order.
type ScalarIterator struct {
	s    Scalars
	next int
}

// Next returns the next scalar element, or nil when the iterator is
// exhausted.
func (it *ScalarIterator) Next() Function {
	if it.next >= it.s.Len() {
		return nil
	}
	f := it.s.At(it.next)
	it.next++
	return f
}

// Reset restarts the iterator.
func (it *ScalarIterator) Reset() { it.next = 0 }
