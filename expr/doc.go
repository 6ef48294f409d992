// Package expr provides the closed family of expressions used to describe
// optimization problems;
//   - a Function is an algebraic expression over decision variables (six
//     kinds, from a bare variable to a vector quadratic form)
//   - a term is one additive contributor to a function, a coefficient
//     times one or two variable references
//
// Functions are immutable values: every operation returns a fresh value
// and leaves its input untouched.
package expr
