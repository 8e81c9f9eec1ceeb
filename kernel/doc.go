// Package kernel provides the low-level arbitrary-precision primitives the
// number tower is built on: directed-rounding real, complex and interval
// arithmetic, and transcendental series, all parameterized by an explicit
// (precision, rounding) pair.
//
// What & Why:
//
//	Every function takes the target precision in bits and a Rounding
//	direction and produces a freshly allocated result rounded exactly once
//	at that precision. Nothing in this package reads ambient state; the
//	Context layer in mp/ decides which (prec, rounding) pair to pass.
//	Reals are plain *big.Float values — math/big already implements binary
//	significand/exponent arithmetic with all five directed rounding modes,
//	so this package only adds the policy that big.Float leaves out:
//	division-by-zero and NaN discipline as errors instead of panics, the
//	real→complex domain boundary (ErrComplexResult), floor/ceil/mod,
//	transcendental series with internal guard bits, interval endpoint
//	rounding, and magnitude/nearest-integer probes.
//
// Special values:
//
//	±Inf flow through as big.Float infinities. big.Float has no NaN; any
//	operation whose result would be NaN (inf−inf, 0·inf, inf/inf) returns
//	ErrNaN instead. The tower layer turns that into its NaN Real.
//
// Complexity:
//
//	Field operations cost what big.Float costs: O(prec) for add/sub,
//	O(M(prec)) for mul/div/sqrt. Transcendental series run in
//	O(prec · M(prec)) after argument reduction.
package kernel
