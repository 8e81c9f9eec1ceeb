// SPDX-License-Identifier: MIT
// Package hyper: engine configuration.

package hyper

import "go.uber.org/zap"

// Defaults of the escalation loop. The working precision starts at
// prec+DefaultExtraPrec and doubles (plus a nudge) on every retry until
// maxPrec; the term loop aborts at maxTerms.
const (
	// DefaultExtraPrec is the initial guard precision in bits.
	DefaultExtraPrec = 50

	// DefaultEpsShift positions the term cutoff below the target
	// precision.
	DefaultEpsShift = 25

	// DefaultMaxTerms bounds a single summation attempt.
	DefaultMaxTerms = 6000

	// DefaultMargin is the convergence margin in bits: an attempt is
	// accepted only when the observed cancellation stays at least this
	// far below the guard precision.
	DefaultMargin = 30
)

// DefaultMaxPrec returns the escalation ceiling for a target precision:
// generous for small targets, proportional for large ones.
func DefaultMaxPrec(prec uint) uint {
	if p := 10 * prec; p > 1000 {
		return p
	}

	return 1000
}

// config collects the knobs of one engine (or one Hyper call).
type config struct {
	maxPrec       uint
	maxTerms      int
	zeroPrec      uint
	margin        int
	accurateSmall bool
	log           *zap.Logger
}

// Option configures an Engine.
type Option func(*config)

// WithMaxPrec caps the working precision of the escalation loop. The
// default is DefaultMaxPrec of the context precision.
func WithMaxPrec(prec uint) Option {
	return func(cfg *config) { cfg.maxPrec = prec }
}

// WithMaxTerms caps the number of series terms per attempt.
func WithMaxTerms(n int) Option {
	return func(cfg *config) { cfg.maxTerms = n }
}

// WithZeroPrec makes the engine snap a heavily cancelled sum whose
// residue is smaller than 2^(−n) to an exact zero, for callers that know
// the true sum is either zero or of reasonable magnitude. Sums that
// escalate to an accurate tiny value are kept, not snapped.
func WithZeroPrec(n uint) Option {
	return func(cfg *config) { cfg.zeroPrec = n }
}

// WithMargin overrides the convergence margin (default DefaultMargin).
// A smaller margin accepts attempts sooner at the cost of accuracy near
// heavy cancellation; a larger one forces extra escalation rounds.
func WithMargin(bits int) Option {
	return func(cfg *config) { cfg.margin = bits }
}

// WithoutAccurateSmall accepts a heavily cancelled sum as-is instead of
// retrying at higher precision. The result's relative error may then be
// large while its absolute error is still small.
func WithoutAccurateSmall() Option {
	return func(cfg *config) { cfg.accurateSmall = false }
}

// WithLogger attaches a structured logger; retries and plan compilation
// are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.log = l
		}
	}
}
