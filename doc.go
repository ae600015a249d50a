// Package spotgp models the light curves of spotted stars as a Gaussian
// process whose prior is derived analytically from a population of dark
// spots.
//
// What is spotgp?
//
//	The surface intensity is expanded in spherical harmonics up to degree
//	L. A spot population (radius, latitude distribution, contrast, count)
//	induces a mean and covariance over those (L+1)² coefficients; a linear
//	flux operator maps them to a Gaussian distribution over light curves.
//	spotgp turns those moments into a usable inference engine:
//		• Likelihood: log marginal likelihood of an observed light curve
//		• Posterior: coefficients conditioned on a light curve
//		• Sampling: prior, low-rank and posterior draws from one seeded stream
//		• Normalization: light curves divided by their own mean
//		• Composition: sums of independent spot populations
//		• Transforms: latitude and radius reparameterizations for samplers
//
// Under the hood the module is organized as:
//
//	linalg/      Cholesky, low-rank eigenfactors, data covariances
//	rng/         the explicit, seeded random-draw stream
//	normalize/   covariance of mean-normalized light curves
//	transforms/  (a, b) ↔ (mode, σ) latitude map, radius bounds
//	moments/     coefficient moments and the chain that produces them
//	flux/        projection of coefficient moments onto light curves
//	temporal/    kernels for surfaces that evolve in time
//	process/     the Gaussian process, inference and composition
//	config/      YAML run configuration
//	dataio/      CSV inputs from the external integrators
//	cmd/spotgp   command-line front end
//
// Spot-integral evaluation and the flux operator are supplied from
// outside through moments.Stage and flux.Factory; spotgp is the
// numerical core that consumes them.
//
//	go install github.com/katalvlaran/spotgp/cmd/spotgp@latest
package spotgp
