// SPDX-License-Identifier: MIT
// Package mp: the precision context that every tower value is bound to.

package mp

import (
	"math"

	"go.uber.org/zap"

	"github.com/fangchenli/mpmath/kernel"
)

// BitsPerDigit is log2(10): the exchange rate between binary precision
// and decimal digits.
const BitsPerDigit = 3.3219280948873626

// Default working sizes of a fresh context. 53 bits / 15 digits match
// IEEE double so float64 interop round-trips.
const (
	// DefaultPrec is the default binary precision in bits.
	DefaultPrec uint = 53

	// DefaultDps is the default decimal precision in digits.
	DefaultDps = 15
)

// PrecToDps returns the number of decimal digits safely representable at
// prec bits. The mapping deliberately loses one digit so prec→dps→prec
// never shrinks the binary precision.
func PrecToDps(prec uint) int {
	d := int(math.Round(float64(prec)/BitsPerDigit)) - 1
	if d < 1 {
		d = 1
	}

	return d
}

// DpsToPrec returns the binary precision needed to hold dps decimal
// digits, padded by one digit's worth of bits.
func DpsToPrec(dps int) uint {
	p := int(math.Round(float64(dps+1) * BitsPerDigit))
	if p < 1 {
		p = 1
	}

	return uint(p)
}

// Context carries the working precision, rounding direction and mode
// flags that every arithmetic operation consults. Values created on a
// context keep a pointer back to it, so changing the context changes the
// behavior of subsequent operations on those values (not the values
// themselves — they stay immutable).
//
// A Context is not safe for concurrent mutation; share one per goroutine
// or Clone.
type Context struct {
	prec        uint
	dps         int
	rounding    kernel.Rounding
	trapComplex bool
	log         *zap.Logger
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithPrec sets the binary precision; the decimal precision follows.
func WithPrec(prec uint) Option {
	return func(c *Context) { c.SetPrec(prec) }
}

// WithDps sets the decimal precision; the binary precision follows.
func WithDps(dps int) Option {
	return func(c *Context) { c.SetDps(dps) }
}

// WithRounding sets the rounding direction for every operation on the
// context. Per-call overrides remain available through OpRounding.
func WithRounding(r kernel.Rounding) Option {
	return func(c *Context) { c.rounding = r }
}

// WithTrapComplex makes real operations fail with ErrDomain instead of
// promoting off the real line (sqrt of a negative, log of a negative).
func WithTrapComplex() Option {
	return func(c *Context) { c.trapComplex = true }
}

// WithLogger attaches a structured logger. The default context is
// silent.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// NewContext builds a context with DefaultPrec/DefaultDps, nearest-even
// rounding and complex promotion enabled, then applies opts in order.
func NewContext(opts ...Option) *Context {
	c := &Context{
		prec:     DefaultPrec,
		dps:      DefaultDps,
		rounding: kernel.Nearest,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Clone returns an independent copy of the context. Values bound to the
// original do not follow; rebind with Convert when needed.
func (c *Context) Clone() *Context {
	cp := *c

	return &cp
}

// Prec returns the current binary precision in bits.
func (c *Context) Prec() uint { return c.prec }

// Dps returns the current decimal precision in digits.
func (c *Context) Dps() int { return c.dps }

// Rounding returns the current rounding direction.
func (c *Context) Rounding() kernel.Rounding { return c.rounding }

// TrapComplex reports whether off-the-real-line results are trapped.
func (c *Context) TrapComplex() bool { return c.trapComplex }

// SetPrec sets the binary precision and rederives the decimal one.
// Values of prec below 1 clamp to 1.
func (c *Context) SetPrec(prec uint) {
	if prec < 1 {
		prec = 1
	}
	c.prec = prec
	c.dps = PrecToDps(prec)
}

// SetDps sets the decimal precision and rederives the binary one.
// Values of dps below 1 clamp to 1.
func (c *Context) SetDps(dps int) {
	if dps < 1 {
		dps = 1
	}
	c.dps = dps
	c.prec = DpsToPrec(dps)
}

// SetRounding sets the rounding direction for subsequent operations.
func (c *Context) SetRounding(r kernel.Rounding) { c.rounding = r }

// SetTrapComplex toggles trapping of complex promotion.
func (c *Context) SetTrapComplex(trap bool) { c.trapComplex = trap }

// Logger returns the context's structured logger.
func (c *Context) Logger() *zap.Logger { return c.log }
