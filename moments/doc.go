// SPDX-License-Identifier: MIT

// Package moments is the boundary between the Gaussian-process engine and
// whatever computes the first two moments of the spherical-harmonic
// coefficients of a spotted stellar surface.
//
// The engine consumes a Stage: something that yields a mean vector and a
// covariance matrix in coefficient space. A Chain produces a Stage by
// running an ordered list of Integral steps (size, latitude, longitude,
// contrast in the usual arrangement) over a seed, exactly once, and
// checking after every step that the result stays in the same
// coefficient space.
//
// The geometric integrals themselves are supplied by callers. This
// package ships the pieces that are pure linear algebra: Fixed for
// precomputed moments, Func to adapt a plain function, and Contrast,
// which superposes a Poisson number of identical features.
package moments
