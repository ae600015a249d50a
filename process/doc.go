// SPDX-License-Identifier: MIT

// Package process is the Gaussian-process engine for starspot surfaces.
//
// A process holds the mean and covariance of the spherical-harmonic
// coefficients of a spotted stellar surface, factored once at
// construction, and answers questions about light curves through a flux
// projector:
//
//   - Mean, Cov: light-curve moments, optionally modulated by a temporal
//     kernel and corrected for mean normalization.
//   - LogLikelihood: the marginal likelihood of an observed light curve.
//   - Conditional: the coefficient posterior given a light curve.
//   - SamplePrior, SamplePriorAt, SamplePosterior, SampleFlux: draws
//     through an explicit random stream.
//
// Process is a closed sum type. A *Leaf comes from one spot population;
// a *Composed is the sum of independent leaves (Compose, Sum, Add) and
// reports per-child values where a leaf reports one.
//
// Numerical trouble is a value, not an error: a normalization past its
// validity threshold gives a +Inf covariance and a −Inf log-likelihood,
// which external samplers reject naturally. Errors are reserved for
// invalid settings (ErrDomain), unsupported operations (ErrNotSupported),
// incompatible compositions (ErrIncompatible) and malformed inputs.
//
// Processes are not safe for concurrent use: sampling advances the shared
// stream.
package process
