// Package constraint provides typed, index-addressed storage for the
// constraints of a model.
//
// A constraint is a (function, set) pair restricting the function's value
// to membership in the set. Each Store holds the constraints of one fixed
// (function kind, set kind) pair; a model composes stores into a registry
// keyed by that pair and layers name lookup on top.
package constraint
