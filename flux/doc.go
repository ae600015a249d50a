// SPDX-License-Identifier: MIT

// Package flux projects coefficient-space moments onto light curves.
//
// A Projector answers three questions for a time grid and a viewing
// Geometry: the design matrix A mapping coefficients to flux, the flux mean
// A·μ and the flux covariance A·Σ·Aᵗ. The rotational design matrix itself
// (occultation-free disk integration with limb darkening) is supplied by
// the caller as a DesignFunc; Linear does the moment algebra on top of it.
//
// With inclination marginalization the star's inclination is not a fixed
// parameter but drawn from the isotropic prior cos i ~ U(0, 1). The flux
// moments are then the mixture moments
//
//	E[f]   = ∫ A(i)·μ di
//	Cov[f] = ∫ A(i)·(Σ + μμᵗ)·A(i)ᵗ di − E[f]·E[f]ᵗ
//
// evaluated on Gauss–Legendre nodes in cos i, and no single design matrix
// exists.
package flux
