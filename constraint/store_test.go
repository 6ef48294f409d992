package constraint_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/optkit/optkit/constraint"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/set"
	"github.com/stretchr/testify/require"
)

const (
	x = expr.Variable(1)
	y = expr.Variable(2)
	z = expr.Variable(3)
)

func affine(c float64, v expr.Variable) expr.ScalarAffine {
	return expr.ScalarAffine{Terms: []expr.AffineTerm{{Coeff: c, VID: v}}}
}

func TestStoreAddDeleteAdd(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()

	i0 := s.Add(affine(1, x), set.EqualTo{Value: 1})
	i1 := s.Add(affine(2, y), set.EqualTo{Value: 2})
	i2 := s.Add(affine(3, z), set.EqualTo{Value: 3})

	assert.Equal(3, s.NbConstraints())
	assert.Equal([]constraint.Index[expr.ScalarAffine, set.EqualTo]{i0, i1, i2}, s.Indices(),
		"indices come back in insertion order")

	assert.NoError(s.Delete(i0))
	assert.Equal(2, s.NbConstraints())
	assert.Equal([]constraint.Index[expr.ScalarAffine, set.EqualTo]{i1, i2}, s.Indices())

	// every later operation on the deleted index fails
	_, err := s.Function(i0)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
	_, err = s.Set(i0)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
	assert.ErrorIs(s.Modify(i0, expr.SetConstant{Value: 0}), constraint.ErrInvalidIndex)
	assert.ErrorIs(s.Delete(i0), constraint.ErrInvalidIndex)

	// the survivors are reachable and intact
	f, err := s.Function(i1)
	assert.NoError(err)
	assert.Equal(affine(2, y), f)
	st, err := s.Set(i2)
	assert.NoError(err)
	assert.Equal(set.EqualTo{Value: 3}, st)

	// a deleted index is never reassigned
	i3 := s.Add(affine(4, x), set.EqualTo{Value: 4})
	assert.NotEqual(i0, i3)
	assert.NotEqual(i1, i3)
	assert.NotEqual(i2, i3)
}

func TestStoreNeverIssuedIndex(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.LessThan](constraint.WithCapacity(4))
	_, err := s.Function(constraint.Index[expr.ScalarAffine, set.LessThan](42))
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
	assert.Equal(0, s.NbConstraints())
	assert.Empty(s.Indices())
}

func TestStoreModify(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()
	i := s.Add(expr.ScalarAffine{Constant: 1}, set.EqualTo{Value: 0})

	assert.NoError(s.Modify(i, expr.SetCoefficient{VID: x, Coeff: 2}))
	assert.NoError(s.Modify(i, expr.SetConstant{Value: 5}))

	f, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(expr.ScalarAffine{
		Terms:    []expr.AffineTerm{{Coeff: 2, VID: x}},
		Constant: 5,
	}, f)

	// shape mismatch leaves the stored function untouched
	assert.ErrorIs(s.Modify(i, expr.SetVectorConstant{Values: []float64{1}}),
		expr.ErrUnsupportedModification)
	g, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(f, g)
}

func TestStoreOwnsItsValues(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()
	f := affine(1, x)
	i := s.Add(f, set.EqualTo{Value: 0})

	// mutating the caller's slice after Add must not be observable
	f.Terms[0].Coeff = 99
	got, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(affine(1, x), got)

	// nor is mutating a returned function
	got.Terms[0].Coeff = -1
	again, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(affine(1, x), again)
}

func TestStoreClear(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.SingleVariable, set.Interval]()
	i0 := s.Add(expr.SingleVariable{VID: x}, set.Interval{Lower: 0, Upper: 1})
	s.Add(expr.SingleVariable{VID: y}, set.Interval{Lower: 0, Upper: 1})

	s.Clear()
	assert.Equal(0, s.NbConstraints())
	assert.Empty(s.Indices())
	_, err := s.Function(i0)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)

	// indices issued before the clear are not recycled
	i2 := s.Add(expr.SingleVariable{VID: z}, set.Interval{Lower: 0, Upper: 1})
	assert.NotEqual(i0, i2)
}

func TestAnyStoreTypeMismatch(t *testing.T) {
	assert := require.New(t)

	var s constraint.AnyStore = constraint.NewStore[expr.ScalarAffine, set.EqualTo]()

	_, err := s.AddConstraint(expr.SingleVariable{VID: x}, set.EqualTo{Value: 0})
	assert.ErrorIs(err, constraint.ErrTypeMismatch)

	_, err = s.AddConstraint(affine(1, x), set.LessThan{Upper: 0})
	assert.ErrorIs(err, constraint.ErrTypeMismatch)
	assert.Equal(0, s.NbConstraints())

	_, err = s.AddConstraint(affine(1, x), set.EqualTo{Value: 0})
	assert.NoError(err)
	assert.Equal(1, s.NbConstraints())
}

func TestStoreVariables(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()
	s.Add(affine(1, x), set.EqualTo{Value: 0})
	s.Add(expr.ScalarAffine{Terms: []expr.AffineTerm{
		{Coeff: 1, VID: y},
		{Coeff: 2, VID: z},
	}}, set.EqualTo{Value: 0})

	var vs bitset.BitSet
	s.Variables(&vs)
	assert.Equal(uint(3), vs.Count())
	assert.True(vs.Test(uint(x)))
	assert.True(vs.Test(uint(y)))
	assert.True(vs.Test(uint(z)))
}
