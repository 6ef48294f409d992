package constraint_test

import (
	"testing"

	"github.com/optkit/optkit/constraint"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/set"
	"github.com/stretchr/testify/require"
)

func TestRemoveVariableSingleMemberGroup(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.VectorOfVariables, set.SecondOrderCone]()
	i := s.Add(expr.VectorOfVariables{VIDs: []expr.Variable{x}}, set.SecondOrderCone{Dim: 1})

	// a group of size 1 is deleted outright, even under a fixed set
	assert.NoError(s.RemoveVariable(x))
	assert.Equal(0, s.NbConstraints())
	_, err := s.Function(i)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
}

func TestRemoveVariableFixedGroupRefuses(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.VectorOfVariables, set.SecondOrderCone]()
	i := s.Add(expr.VectorOfVariables{VIDs: []expr.Variable{x, y, z}}, set.SecondOrderCone{Dim: 3})

	err := s.RemoveVariable(y)
	assert.ErrorIs(err, constraint.ErrDeleteNotAllowed)
	assert.ErrorContains(err, "2") // names the offending variable

	// the failed cascade left the partition untouched
	assert.Equal(1, s.NbConstraints())
	f, ferr := s.Function(i)
	assert.NoError(ferr)
	assert.Equal(expr.VectorOfVariables{VIDs: []expr.Variable{x, y, z}}, f)
	st, serr := s.Set(i)
	assert.NoError(serr)
	assert.Equal(set.SecondOrderCone{Dim: 3}, st)
}

func TestRemoveVariableShrinksUpdatableGroup(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.VectorOfVariables, set.Nonnegatives]()
	i := s.Add(expr.VectorOfVariables{VIDs: []expr.Variable{x, y, z}}, set.Nonnegatives{Dim: 3})

	assert.NoError(s.RemoveVariable(y))

	f, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(expr.VectorOfVariables{VIDs: []expr.Variable{x, z}}, f)
	st, err := s.Set(i)
	assert.NoError(err)
	assert.Equal(set.Nonnegatives{Dim: 2}, st)
}

func TestRemoveVariableGroupReducedToOne(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.VectorOfVariables, set.Zeros]()
	i := s.Add(expr.VectorOfVariables{VIDs: []expr.Variable{x, y}}, set.Zeros{Dim: 2})

	// a legal removal leaving a single member deletes the whole group
	assert.NoError(s.RemoveVariable(x))
	assert.Equal(0, s.NbConstraints())
	_, err := s.Function(i)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
}

func TestFilterVariablesWholeGroup(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.VectorOfVariables, set.SecondOrderCone]()
	s.Add(expr.VectorOfVariables{VIDs: []expr.Variable{x, y, z}}, set.SecondOrderCone{Dim: 3})

	// losing every member at once deletes the group, fixed set or not
	assert.NoError(s.FilterVariables(func(expr.Variable) bool { return false }))
	assert.Equal(0, s.NbConstraints())
}

func TestRemoveVariableDeletesSingleVariableConstraint(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.SingleVariable, set.Interval]()
	ix := s.Add(expr.SingleVariable{VID: x}, set.Interval{Lower: 0, Upper: 1})
	iy := s.Add(expr.SingleVariable{VID: y}, set.Interval{Lower: 0, Upper: 2})

	assert.NoError(s.RemoveVariable(x))
	assert.Equal(1, s.NbConstraints())
	_, err := s.Function(ix)
	assert.ErrorIs(err, constraint.ErrInvalidIndex)
	f, err := s.Function(iy)
	assert.NoError(err)
	assert.Equal(expr.SingleVariable{VID: y}, f)
}

func TestRemoveVariableStripsTerms(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()
	i := s.Add(expr.ScalarAffine{
		Terms: []expr.AffineTerm{
			{Coeff: 1, VID: x},
			{Coeff: 2, VID: y},
		},
		Constant: 3,
	}, set.EqualTo{Value: 1})

	assert.NoError(s.RemoveVariable(y))

	f, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(expr.ScalarAffine{
		Terms:    []expr.AffineTerm{{Coeff: 1, VID: x}},
		Constant: 3,
	}, f)
}

func TestRemoveVariableStripsQuadraticTerms(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarQuadratic, set.LessThan]()
	i := s.Add(expr.ScalarQuadratic{
		QuadraticTerms: []expr.QuadraticTerm{
			{Coeff: 1, VID1: x, VID2: y},
			{Coeff: 2, VID1: z, VID2: z},
		},
		AffineTerms: []expr.AffineTerm{{Coeff: 3, VID: y}},
	}, set.LessThan{Upper: 10})

	// a quadratic term survives only if both of its slots survive
	assert.NoError(s.RemoveVariable(y))

	f, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(expr.ScalarQuadratic{
		QuadraticTerms: []expr.QuadraticTerm{{Coeff: 2, VID1: z, VID2: z}},
	}, f)
}

func TestRemoveVariableUnreferenced(t *testing.T) {
	assert := require.New(t)

	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()
	i := s.Add(affine(1, x), set.EqualTo{Value: 0})

	// removing a variable the partition never references is a no-op
	assert.NoError(s.RemoveVariable(z))
	f, err := s.Function(i)
	assert.NoError(err)
	assert.Equal(affine(1, x), f)
}
