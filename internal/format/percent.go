package format

import "github.com/shopspring/decimal"

// Options controls percentage rendering.
type Options struct {
	Precision int32
	RoundMode RoundMode
	Plus      bool // prefix positive values with "+"
}

// DisplayPercent is the percentage style used across vault figures: two
// digits, truncated toward zero.
var DisplayPercent = Options{Precision: 2, RoundMode: RoundDown}

// Percent renders v, already scaled to percent units, with a "%" suffix.
func Percent(v decimal.Decimal, opts Options) string {
	s := Fixed(v, opts.Precision, opts.RoundMode)
	if opts.Plus && v.IsPositive() && s != Fixed(decimal.Zero, opts.Precision, opts.RoundMode) {
		s = "+" + s
	}
	return s + "%"
}

// RatioPercent renders a ratio such as 1.5 as "150.00%".
func RatioPercent(ratio decimal.Decimal, opts Options) string {
	return Percent(ratio.Mul(hundred), opts)
}
