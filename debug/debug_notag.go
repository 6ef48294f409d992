//go:build !debug

package debug

// Debug enables expensive internal sanity checks.
const Debug = false
