// Package linalg collects the dense linear-algebra kernels shared by the
// spotgp engine: Cholesky factor-and-solve, the truncated eigen square
// root used by low-rank samplers, data-covariance broadcasting and a few
// elementwise helpers on symmetric matrices.
//
// Everything operates on gonum mat types. The package adds what gonum
// leaves to the caller:
//
//   - sentinel errors (errors.go) so callers can match failures with errors.Is;
//   - central validators (validators.go) run before every kernel;
//   - a documented numeric policy (eigenvalue clamping, symmetry tolerance).
//
// Determinism:
//
//	All kernels are pure functions of their inputs. Nothing here draws
//	random numbers or keeps state between calls.
//
// Complexity:
//
//	Cholesky and EigenSym are O(n³); elementwise helpers are O(n²).
package linalg
