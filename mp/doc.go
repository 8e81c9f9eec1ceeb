// SPDX-License-Identifier: MIT

// Package mp provides the context-scoped number tower of the library:
// arbitrary-precision reals, complexes, outward-rounded intervals and
// lazily materialized constants, all bound to a Context that carries
// the working precision and rounding direction.
//
// What & Why: every operation consults its context at call time, so a
// program raises or lowers precision globally (or through a scoped
// override, see PrecScope) without touching the values themselves.
// Values are immutable; arithmetic always allocates.
//
//   - Context    — precision, rounding, trap flags; built with options
//   - Real       — one arbitrary-precision real, possibly NaN or ±inf
//   - Complex    — a pair of reals
//   - Interval   — a closed interval rounded outward at every step
//   - Constant   — π, e, … materialized at whatever precision is current
//
// Mixed-kind arithmetic promotes along real → complex and
// real → interval; complex and interval do not mix. Operations that
// leave the real line (sqrt of a negative) promote to complex, or fail
// with ErrDomain when the context was built WithTrapComplex.
//
// Complexity: arithmetic is O(M(p)) for p bits of working precision,
// with M the big.Float multiplication cost; elementary functions add a
// series evaluation of O(p / log p) terms.
package mp
