// Package optkit provides the algebraic building blocks used to describe
// optimization problems: decision variables, affine and quadratic
// expressions over them, and the indexed storage that binds expressions to
// sets as constraints.
//
// The library is split in three layers:
//   - expr holds the closed family of term and function representations,
//     with evaluation, substitution, canonicalization and a delta-style
//     modification protocol
//   - set holds the constraint set kinds and their capability queries
//   - constraint holds the typed, index-addressed partitions that persist
//     (function, set) pairs and enforce referential integrity when
//     variables are removed
//
// Model containers and solvers are built on top of these layers; optkit
// itself never solves anything.
package optkit

import "github.com/blang/semver/v4"

// Version of the optkit library.
var Version = semver.MustParse("0.4.0")
