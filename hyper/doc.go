// SPDX-License-Identifier: MIT

// Package hyper sums generalized hypergeometric series pFq with
// adaptive precision.
//
// What & Why: the terms of Σ Π(a_i)_k / Π(b_j)_k · z^k/k! can grow
// enormous before they shrink, and alternating arguments cancel most
// of the accumulated magnitude. A fixed working precision therefore
// produces garbage for large |z|. The Engine sums at prec+extra bits,
// measures how many leading bits cancelled, and retries with a doubled
// guard until the cancellation fits — or fails with NoConvergenceError
// at its ceiling. Lower parameters at nonpositive integers the series
// reaches are genuine poles and fail fast with ErrPole; parameters
// merely close to those integers widen the guard precision in advance
// so the spiked terms are summed accurately.
//
// Complexity: one attempt costs O(n·(p+q)·M(wp)) for n terms at wp
// working bits; escalation at most doubles wp per retry up to the
// configured ceiling.
package hyper
