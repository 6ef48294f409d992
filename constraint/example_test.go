package constraint_test

import (
	"fmt"

	"github.com/optkit/optkit/constraint"
	"github.com/optkit/optkit/expr"
	"github.com/optkit/optkit/set"
)

func ExampleStore() {
	s := constraint.NewStore[expr.ScalarAffine, set.EqualTo]()

	s.Add(expr.ScalarAffine{
		Terms: []expr.AffineTerm{
			{Coeff: 1, VID: 0},
			{Coeff: 1, VID: 1},
		},
	}, set.EqualTo{Value: 1})
	s.Add(expr.ScalarAffine{
		Terms:    []expr.AffineTerm{{Coeff: 2, VID: 0}},
		Constant: -1,
	}, set.EqualTo{Value: 0})

	r := expr.MapResolver{0: "x", 1: "y"}
	for _, i := range s.Indices() {
		f, _ := s.Function(i)
		st, _ := s.Set(i)
		fmt.Printf("%s == %g\n", f.String(r), st.Value)
	}

	// Output:
	// x + y == 1
	// 2⋅x + -1 == 0
}
