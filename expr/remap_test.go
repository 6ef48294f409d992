package expr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/optkit/optkit/expr"
	"github.com/stretchr/testify/require"
)

func TestRemap(t *testing.T) {
	assert := require.New(t)

	// translate handles between two independently indexed models
	shift := func(v expr.Variable) expr.Variable { return v + 100 }

	f := expr.ScalarQuadratic{
		QuadraticTerms: []expr.QuadraticTerm{{Coeff: 2, VID1: x, VID2: y}},
		AffineTerms:    []expr.AffineTerm{{Coeff: 3, VID: z}},
		Constant:       1,
	}

	got := expr.Remap(f, shift).(expr.ScalarQuadratic)
	assert.Equal(expr.ScalarQuadratic{
		QuadraticTerms: []expr.QuadraticTerm{{Coeff: 2, VID1: x + 100, VID2: y + 100}},
		AffineTerms:    []expr.AffineTerm{{Coeff: 3, VID: z + 100}},
		Constant:       1,
	}, got)
	assert.Equal(expr.Variable(1), f.QuadraticTerms[0].VID1, "input is untouched")

	vov := expr.VectorOfVariables{VIDs: []expr.Variable{x, y}}
	assert.Equal(expr.VectorOfVariables{VIDs: []expr.Variable{x + 100, y + 100}},
		expr.Remap(vov, shift))

	sv := expr.SingleVariable{VID: x}
	assert.Equal(expr.SingleVariable{VID: x + 100}, expr.Remap(sv, shift))
}

func TestRemapPreservesEvaluation(t *testing.T) {
	assert := require.New(t)

	f := expr.VectorAffine{
		Terms: []expr.VectorAffineTerm{
			{Output: 0, AffineTerm: expr.AffineTerm{Coeff: 2, VID: x}},
			{Output: 1, AffineTerm: expr.AffineTerm{Coeff: 3, VID: y}},
		},
		Constants: []float64{1, 1},
	}
	shift := func(v expr.Variable) expr.Variable { return v + 10 }

	at := func(v expr.Variable) float64 { return float64(v % 10) }
	assert.Equal(f.Evaluate(at), expr.Remap(f, shift).(expr.VectorAffine).Evaluate(at))
}

func TestConcat(t *testing.T) {
	assert := require.New(t)

	a := expr.ScalarAffine{
		Terms:    []expr.AffineTerm{{Coeff: 2, VID: x}},
		Constant: 1,
	}
	b := expr.VectorAffine{
		Terms: []expr.VectorAffineTerm{
			{Output: 1, AffineTerm: expr.AffineTerm{Coeff: 3, VID: y}},
		},
		Constants: []float64{5, 6},
	}
	c := expr.SingleVariable{VID: z}

	got, err := expr.Concat(a, b, c)
	assert.NoError(err)
	assert.Equal(4, got.NbOutputs(), "result dimension is the sum of input dimensions")
	assert.Equal([]float64{1, 5, 6, 0}, got.Constants)
	assert.Equal([]expr.VectorAffineTerm{
		{Output: 0, AffineTerm: expr.AffineTerm{Coeff: 2, VID: x}},
		{Output: 2, AffineTerm: expr.AffineTerm{Coeff: 3, VID: y}},
		{Output: 3, AffineTerm: expr.AffineTerm{Coeff: 1, VID: z}},
	}, got.Terms)

	_, err = expr.Concat(a, expr.ScalarQuadratic{})
	assert.Error(err, "quadratic functions cannot be stacked")
}

func TestVectorizeAndAsAffine(t *testing.T) {
	assert := require.New(t)

	sv := expr.SingleVariable{VID: x}
	assert.Equal(expr.VectorOfVariables{VIDs: []expr.Variable{x}}, expr.Vectorize(sv))
	assert.Equal(expr.ScalarAffine{
		Terms: []expr.AffineTerm{{Coeff: 1, VID: x}},
	}, expr.AsAffine(sv))

	sa := expr.ScalarAffine{Terms: []expr.AffineTerm{{Coeff: 2, VID: y}}, Constant: 3}
	va := expr.Vectorize(sa).(expr.VectorAffine)
	assert.Equal(1, va.NbOutputs())
	assert.Equal([]float64{3}, va.Constants)

	vov := expr.VectorOfVariables{VIDs: []expr.Variable{x, y}}
	lifted := expr.AsAffine(vov).(expr.VectorAffine)
	assert.Equal(2, lifted.NbOutputs())
	at := func(v expr.Variable) float64 { return float64(v) }
	assert.Equal(vov.Evaluate(at), lifted.Evaluate(at))

	// vector kinds pass through unchanged
	assert.True(cmp.Equal(expr.Function(lifted), expr.Vectorize(lifted)))
	assert.True(cmp.Equal(expr.Function(lifted), expr.AsAffine(lifted)))
}
