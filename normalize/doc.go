// Package normalize maps a light-curve covariance from the additive-baseline
// regime to the mean-normalized regime observed in photometry.
//
// Dividing a light curve by its own (random) mean is nonlinear. Writing the
// relative flux as u = q·x + w, with x the relative deviation of the sample
// mean (variance z = mean(Σ)/μ²) and w independent of x, the normalized
// covariance is
//
//	α/μ² · Σ + z·((α+β)·p·pᵗ − α·q·qᵗ),   p = 1 − q,  q = Σ·1 / (K·mean(Σ))
//
// where α = E[(1+x)⁻²] and α+β = Var(x/(1+x))/z. Both expectations diverge
// for a Gaussian x, so they are replaced by their asymptotic series in z,
// truncated at a fixed order (default 20). The truncation is only valid
// while z stays below a threshold (default 0.023, just below 1/(2·order));
// beyond it the covariance is reported as +Inf entrywise so the likelihood
// evaluates to −Inf and samplers reject the region.
package normalize
