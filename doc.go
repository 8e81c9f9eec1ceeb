// Package mpmath is the numeric core of an arbitrary-precision computation
// engine: a context-scoped tower of real, complex and interval number types
// over directed-rounding arithmetic, plus an adaptive-precision summation
// engine for hypergeometric-type series.
//
// 🚀 What is mpmath?
//
//	A pure-Go multiprecision core that brings together:
//		• Context-scoped precision: every operation rounds at the owning
//		  Context's (precision, rounding) pair — no process-wide state
//		• A closed number tower: Real, Complex, Interval and lazily
//		  recomputed Constants, with automatic real→complex promotion
//		• Operator dispatch across tower variants and native Go numbers,
//		  with an integer fast path and a convert-and-retry fallback
//		• Scoped precision overrides (extra bits / fixed bits, binary or
//		  decimal) with guaranteed stack-discipline restore
//		• Adaptive summation that detects cancellation and near-singular
//		  terms and escalates working precision until accuracy is met
//
// Under the hood, everything is organized under three subpackages:
//
//	kernel/ — directed-rounding real/complex/interval primitives and
//	          transcendental series over math/big.Float
//	mp/     — Context, the number tower, operator dispatch, precision
//	          scopes, interval literals, accurate accumulation (Sum/Dot)
//	hyper/  — precision-escalating evaluator for finite
//	          hypergeometric-type sums
//
// Quick example:
//
//	ctx := mp.NewContext(mp.WithDps(30))
//	x, _ := ctx.Convert("1.2345")
//	i, _ := ctx.Sqrt(-1) // Complex(0, 1): promoted, not an error
//	s, _ := ctx.Add(x, i)
//	fmt.Println(s)
//
// Concurrency: the design is single-threaded by intent — one Context per
// goroutine, or external synchronization around a shared Context.
//
//	go get github.com/fangchenli/mpmath/mp
package mpmath
