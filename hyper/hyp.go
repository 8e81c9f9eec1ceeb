package hyper

import "github.com/fangchenli/mpmath/mp"

// Hyp0F1 evaluates ₀F₁(; b; z), the confluent limit function.
func (e *Engine) Hyp0F1(b, z any) (mp.Value, error) {
	return e.Hyper(nil, []any{b}, z)
}

// Hyp1F0 evaluates ₁F₀(a;; z) = (1−z)^−a as a series.
func (e *Engine) Hyp1F0(a, z any) (mp.Value, error) {
	return e.Hyper([]any{a}, nil, z)
}

// Hyp1F1 evaluates ₁F₁(a; b; z), Kummer's confluent function.
func (e *Engine) Hyp1F1(a, b, z any) (mp.Value, error) {
	return e.Hyper([]any{a}, []any{b}, z)
}

// Hyp2F1 evaluates ₂F₁(a, b; c; z), the Gauss hypergeometric function,
// by direct summation; the series converges for |z| < 1.
func (e *Engine) Hyp2F1(a, b, c, z any) (mp.Value, error) {
	return e.Hyper([]any{a, b}, []any{c}, z)
}
