// Package temporal implements the stationary kernels that model spot
// evolution over time.
//
// A time-variable process multiplies its light-curve covariance entrywise
// by K(t, t; τ) and draws coefficient samples jointly across times with the
// Kronecker structure K_t ⊗ Σ_ylm.
//
// All kernels are functions of r = |t1 − t2| / τ and equal 1 at r = 0:
//
//	Exponential   exp(−r)
//	Matern32      (1 + √3 r) exp(−√3 r)          (default)
//	Matern52      (1 + √5 r + 5r²/3) exp(−√5 r)
//	ExpSquared    exp(−r²/2)
package temporal
