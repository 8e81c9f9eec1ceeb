// SPDX-License-Identifier: MIT
// Package mp: the number tower (Real, Complex, Interval, Constant).

package mp

import (
	"fmt"
	"math/big"

	"github.com/fangchenli/mpmath/kernel"
)

// Kind discriminates the members of the number tower.
type Kind int

const (
	// KindReal is an arbitrary-precision real number (possibly NaN or ±inf).
	KindReal Kind = iota

	// KindComplex is a pair of reals.
	KindComplex

	// KindInterval is a closed real interval with outward rounding.
	KindInterval

	// KindConstant is a lazily materialized named constant.
	KindConstant
)

// String implements fmt.Stringer for Kind.
func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindComplex:
		return "complex"
	case KindInterval:
		return "interval"
	case KindConstant:
		return "constant"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the closed interface over the number tower. Only Real,
// Complex, Interval and Constant implement it; external types cannot
// join the tower.
type Value interface {
	// Kind reports which tower member this is.
	Kind() Kind

	// Context returns the context the value is bound to.
	Context() *Context

	// Hash returns a stable hash: values that compare equal across
	// kinds (a Real 7, a Complex 7+0i, a point Interval [7,7]) hash
	// alike.
	Hash() uint64

	fmt.Stringer

	isValue()
}

// nanHash is the fixed hash of NaN; NaN never compares equal to
// anything, including itself, so any constant works.
const nanHash = 0x7ff8000000000000

// Real is an immutable arbitrary-precision real number. The zero value
// is not usable; construct through a Context.
type Real struct {
	ctx *Context
	v   *big.Float
	nan bool
}

// NewReal binds a copy of x to the context, rounding it to the context
// precision.
func (c *Context) NewReal(x *big.Float) *Real {
	return &Real{ctx: c, v: kernel.Pos(x, c.prec, c.rounding)}
}

// Int builds the context-bound real holding n exactly, regardless of
// the context precision. Rounding happens at operation time.
func (c *Context) Int(n int64) *Real {
	return &Real{ctx: c, v: kernel.FromInt64(n)}
}

// Float64 builds a real from a float64; the 53-bit value carries over
// without rounding. NaN input yields the context's NaN value;
// infinities carry over.
func (c *Context) Float64(x float64) *Real {
	f, err := kernel.FromFloat64(x)
	if err != nil {
		return c.NaN()
	}

	return &Real{ctx: c, v: f}
}

// NaN returns the not-a-number real. It is unordered against every
// value and absorbs all arithmetic.
func (c *Context) NaN() *Real {
	return &Real{ctx: c, v: new(big.Float), nan: true}
}

// Inf returns +inf for sign ≥ 0 and −inf otherwise.
func (c *Context) Inf(sign int) *Real {
	return &Real{ctx: c, v: kernel.Inf(sign)}
}

// NegInf returns −inf.
func (c *Context) NegInf() *Real { return c.Inf(-1) }

// Zero returns the exact zero real.
func (c *Context) Zero() *Real { return c.Int(0) }

// One returns the exact one real.
func (c *Context) One() *Real { return c.Int(1) }

// Fraction returns p/q rounded once to the context precision. The
// division happens at full accuracy, so Fraction(1, 3) is the best
// possible approximation at the current precision.
func (c *Context) Fraction(p, q int64) (*Real, error) {
	if q == 0 {
		return nil, fmt.Errorf("mp: fraction %d/%d: %w", p, q, kernel.ErrDivisionByZero)
	}
	r := new(big.Rat).SetFrac64(p, q)

	return &Real{ctx: c, v: kernel.FromRat(r, c.prec, c.rounding)}, nil
}

// Kind implements Value.
func (x *Real) Kind() Kind { return KindReal }

// Context implements Value.
func (x *Real) Context() *Context { return x.ctx }

func (x *Real) isValue() {}

// Float returns a copy of the underlying float. NaN reals have no float
// representation; the copy is zero in that case, so check IsNaN first.
func (x *Real) Float() *big.Float { return new(big.Float).Copy(x.v) }

// Float64 returns the nearest float64; NaN maps to an IEEE NaN.
func (x *Real) Float64() float64 {
	if x.nan {
		nan := 0.0

		return nan / nan
	}
	f, _ := x.v.Float64()

	return f
}

// IsNaN reports whether x is the not-a-number value.
func (x *Real) IsNaN() bool { return x.nan }

// IsInf reports whether x is ±inf.
func (x *Real) IsInf() bool { return !x.nan && x.v.IsInf() }

// IsZero reports whether x is exactly zero.
func (x *Real) IsZero() bool { return !x.nan && x.v.Sign() == 0 && !x.v.IsInf() }

// IsInt reports whether x is a finite integer.
func (x *Real) IsInt() bool { return !x.nan && kernel.IsInt(x.v) }

// IsNPInt reports whether x is a nonpositive integer (0, −1, −2, …),
// the pole locations of the gamma function.
func (x *Real) IsNPInt() bool { return x.IsInt() && x.v.Sign() <= 0 }

// Sign returns −1, 0 or +1. The sign of NaN is 0; check IsNaN to
// distinguish it from zero.
func (x *Real) Sign() int {
	if x.nan {
		return 0
	}

	return x.v.Sign()
}

// Mag returns the binary magnitude of x (see kernel.Mag). NaN reports
// MagPosInf so magnitude-based bounds stay conservative.
func (x *Real) Mag() int {
	if x.nan {
		return kernel.MagPosInf
	}

	return kernel.Mag(x.v)
}

// Hash implements Value.
func (x *Real) Hash() uint64 {
	if x.nan {
		return nanHash
	}

	return kernel.Hash(x.v)
}

// String renders x with the context's decimal precision.
func (x *Real) String() string {
	if x.nan {
		return "nan"
	}
	if x.v.IsInf() {
		if x.v.Signbit() {
			return "-inf"
		}

		return "+inf"
	}

	return x.v.Text('g', x.ctx.dps)
}

// Complex is an immutable complex number over the same kernel as Real.
type Complex struct {
	ctx *Context
	v   kernel.Complex
}

// NewComplex binds a complex value with the given parts; nil parts read
// as zero.
func (c *Context) NewComplex(re, im *big.Float) *Complex {
	z := kernel.NewComplex(re, im)

	return &Complex{ctx: c, v: kernel.CPos(z, c.prec, c.rounding)}
}

// I returns the imaginary unit bound to the context.
func (c *Context) I() *Complex {
	return c.NewComplex(nil, kernel.FromInt64(1))
}

// Kind implements Value.
func (z *Complex) Kind() Kind { return KindComplex }

// Context implements Value.
func (z *Complex) Context() *Context { return z.ctx }

func (z *Complex) isValue() {}

// Re returns the real part as a context-bound Real.
func (z *Complex) Re() *Real { return &Real{ctx: z.ctx, v: new(big.Float).Copy(z.v.Re)} }

// Im returns the imaginary part as a context-bound Real.
func (z *Complex) Im() *Real { return &Real{ctx: z.ctx, v: new(big.Float).Copy(z.v.Im)} }

// IsZero reports whether both parts are exactly zero.
func (z *Complex) IsZero() bool { return z.v.CIsZero() }

// IsReal reports whether the imaginary part is exactly zero.
func (z *Complex) IsReal() bool { return z.v.CIsReal() }

// Conj returns the complex conjugate.
func (z *Complex) Conj() *Complex {
	return &Complex{ctx: z.ctx, v: kernel.CConj(z.v, z.ctx.prec, z.ctx.rounding)}
}

// Hash implements Value.
func (z *Complex) Hash() uint64 { return kernel.CHash(z.v) }

// String renders z as "(re + imj)" with the context's decimal precision.
func (z *Complex) String() string {
	re := z.v.Re.Text('g', z.ctx.dps)
	im := z.v.Im
	if im.Signbit() {
		return fmt.Sprintf("(%s - %sj)", re, new(big.Float).Abs(im).Text('g', z.ctx.dps))
	}

	return fmt.Sprintf("(%s + %sj)", re, im.Text('g', z.ctx.dps))
}

// Interval is an immutable closed real interval. Operations round
// outward so the interval always contains the true result set.
type Interval struct {
	ctx *Context
	v   kernel.Interval
}

// NewInterval builds an interval from two endpoints, converting each
// through the context's conversion rules. A NaN endpoint widens to the
// entire real line; complex or out-of-order endpoints yield
// ErrBadEndpoints.
func (c *Context) NewInterval(a, b any) (*Interval, error) {
	ea, err := c.endpoint(a)
	if err != nil {
		return nil, err
	}
	eb, err := c.endpoint(b)
	if err != nil {
		return nil, err
	}
	if ea == nil || eb == nil {
		return &Interval{ctx: c, v: kernel.EntireLine()}, nil
	}
	if ea.Cmp(eb) > 0 {
		return nil, fmt.Errorf("mp: interval endpoints out of order: %w", ErrBadEndpoints)
	}

	return &Interval{ctx: c, v: kernel.IPos(kernel.NewInterval(ea, eb), c.prec)}, nil
}

// PointInterval builds the degenerate interval [x, x].
func (c *Context) PointInterval(x any) (*Interval, error) {
	return c.NewInterval(x, x)
}

// endpoint converts a candidate endpoint to a kernel float. A NaN
// endpoint reports nil with no error, signaling "widen to infinity".
func (c *Context) endpoint(x any) (*big.Float, error) {
	v, err := c.Convert(x)
	if err != nil {
		return nil, fmt.Errorf("mp: interval endpoint: %w", ErrBadEndpoints)
	}
	switch t := v.(type) {
	case *Real:
		if t.nan {
			return nil, nil
		}

		return t.v, nil
	case *Constant:
		return t.materialize().v, nil
	case *Complex:
		if t.IsReal() {
			return t.v.Re, nil
		}

		return nil, fmt.Errorf("mp: complex interval endpoint: %w", ErrBadEndpoints)
	default:
		return nil, fmt.Errorf("mp: interval endpoint of kind %s: %w", v.Kind(), ErrBadEndpoints)
	}
}

// Kind implements Value.
func (x *Interval) Kind() Kind { return KindInterval }

// Context implements Value.
func (x *Interval) Context() *Context { return x.ctx }

func (x *Interval) isValue() {}

// A returns the lower endpoint as a context-bound Real.
func (x *Interval) A() *Real { return &Real{ctx: x.ctx, v: new(big.Float).Copy(x.v.A)} }

// B returns the upper endpoint as a context-bound Real.
func (x *Interval) B() *Real { return &Real{ctx: x.ctx, v: new(big.Float).Copy(x.v.B)} }

// IsPoint reports whether the endpoints coincide exactly.
func (x *Interval) IsPoint() bool { return x.v.IsPoint() }

// Mid returns the midpoint rounded to the context precision.
func (x *Interval) Mid() (*Real, error) {
	m, err := kernel.IMid(x.v, x.ctx.prec)
	if err != nil {
		return nil, err
	}

	return &Real{ctx: x.ctx, v: m}, nil
}

// Delta returns the width, rounded up so it never understates the
// uncertainty.
func (x *Interval) Delta() (*Real, error) {
	d, err := kernel.IDelta(x.v, x.ctx.prec)
	if err != nil {
		return nil, err
	}

	return &Real{ctx: x.ctx, v: d}, nil
}

// Contains reports whether v (converted through the context) lies in
// the interval. Interval arguments test subset containment.
func (x *Interval) Contains(v any) (bool, error) {
	cv, err := x.ctx.Convert(v)
	if err != nil {
		return false, err
	}
	switch t := cv.(type) {
	case *Real:
		if t.nan {
			return false, nil
		}

		return x.v.Contains(t.v), nil
	case *Constant:
		return x.v.Contains(t.materialize().v), nil
	case *Interval:
		return x.v.ContainsInterval(t.v), nil
	case *Complex:
		if !t.IsReal() {
			return false, nil
		}

		return x.v.Contains(t.v.Re), nil
	default:
		return false, fmt.Errorf("mp: containment of kind %s: %w", cv.Kind(), ErrUnsupportedOperand)
	}
}

// Hash implements Value. A point interval hashes like the real it
// collapses to.
func (x *Interval) Hash() uint64 {
	if x.v.IsPoint() {
		return kernel.Hash(x.v.A)
	}

	return kernel.IHash(x.v)
}

// String renders the interval in bracket form at the context's decimal
// precision.
func (x *Interval) String() string { return FormatInterval(x, x.ctx.dps) }

// Constant is a named constant materialized lazily at whatever
// precision the context holds when it is used, so raising the precision
// after building π still yields full accuracy.
type Constant struct {
	ctx  *Context
	name string
	fn   kernel.ConstFn
}

// NewConstant registers a lazily evaluated constant on the context.
func (c *Context) NewConstant(name string, fn kernel.ConstFn) *Constant {
	return &Constant{ctx: c, name: name, fn: fn}
}

// Kind implements Value.
func (k *Constant) Kind() Kind { return KindConstant }

// Context implements Value.
func (k *Constant) Context() *Context { return k.ctx }

func (k *Constant) isValue() {}

// Name returns the symbolic name, e.g. "pi".
func (k *Constant) Name() string { return k.name }

// Value materializes the constant at the context's current precision.
func (k *Constant) Value() *Real { return k.materialize() }

func (k *Constant) materialize() *Real {
	return &Real{ctx: k.ctx, v: k.fn(k.ctx.prec, k.ctx.rounding)}
}

// Hash implements Value: a constant hashes as its materialized value.
func (k *Constant) Hash() uint64 { return k.materialize().Hash() }

// String renders the materialized value.
func (k *Constant) String() string { return k.materialize().String() }
