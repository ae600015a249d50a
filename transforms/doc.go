// SPDX-License-Identifier: MIT

// Package transforms holds the closed-form hyperparameter reparameterizations
// of the spot process.
//
// Three families live here:
//
//   - AlphaBeta maps a Beta mean and normalized variance to its shape pair.
//   - Latitude maps the unit-scaled log shape pair (a, b) of the spot
//     latitude distribution, cos φ ~ Beta(α, β), to an interpretable
//     (mode, σ) pair in degrees and back, and reports log|J| of that map so
//     that a uniform prior on (mode, σ) can be imposed while sampling in
//     (a, b).
//   - HWHM, PeakError, MinRPrime, MaxRPrime and RadiusCoefficients bound the
//     spot radius expansion parameter r' for a given spherical-harmonic
//     degree.
//
// The (a, b) ↔ (mode, σ) map is a Laplace approximation: the mode is the
// stationary point of log p(φ) and σ is the inverse square root of the
// negative curvature there. Both directions are exact inverses of each
// other, so round trips are limited only by floating-point error.
package transforms
