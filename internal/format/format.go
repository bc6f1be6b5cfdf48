// Package format renders decimal quantities for display. Every function is
// stateless: precision and rounding are passed per call, never read from
// package-level defaults.
package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/tokens"
)

// RoundMode selects how a value is cut to its display precision.
type RoundMode int

const (
	// RoundDown truncates toward zero.
	RoundDown RoundMode = iota
	// RoundHalfUp rounds half away from zero.
	RoundHalfUp
)

// Placeholder is shown in place of a value whose inputs are missing.
const Placeholder = "--"

// NotApplicable is shown for figures that do not apply to the vault.
const NotApplicable = "-"

// DustLimit is the smallest magnitude CryptoBalance renders as a number.
var DustLimit = decimal.RequireFromString("0.0001")

var (
	ten      = decimal.NewFromInt(10)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
	trillion = decimal.NewFromInt(1_000_000_000_000)
)

// Fixed renders v with exactly precision fractional digits.
func Fixed(v decimal.Decimal, precision int32, mode RoundMode) string {
	return cut(v, precision, mode).StringFixed(precision)
}

// Grouped renders v like Fixed with comma thousands separators in the
// integer part.
func Grouped(v decimal.Decimal, precision int32, mode RoundMode) string {
	return groupThousands(Fixed(v, precision, mode))
}

// Amount renders a token amount truncated to the token's display digits.
// "USD" always uses two digits.
func Amount(v decimal.Decimal, token string) string {
	return Grouped(v, int32(tokens.Get(token).Digits), RoundDown)
}

// USD renders a dollar amount with two truncated digits and a "$" prefix.
func USD(v decimal.Decimal) string {
	s := Amount(v.Abs(), "USD")
	if v.IsNegative() && s != "0.00" {
		return "-$" + s
	}
	return "$" + s
}

// CryptoBalance renders a balance with magnitude-dependent precision:
// tiny balances collapse to "<0.0001", small ones keep four digits, large
// ones use shorthand suffixes.
func CryptoBalance(v decimal.Decimal) string {
	abs := v.Abs()
	switch {
	case abs.IsZero():
		return Shorthand(v, 2)
	case abs.LessThan(DustLimit):
		return "<" + DustLimit.String()
	case abs.LessThan(ten):
		return Shorthand(v, 4)
	case abs.LessThan(million):
		return Grouped(v, 2, RoundDown)
	default:
		return Shorthand(v, 2)
	}
}

// Shorthand renders v with a K/M/B/T suffix when large enough, truncating
// to precision digits.
func Shorthand(v decimal.Decimal, precision int32) string {
	abs := v.Abs()
	switch {
	case abs.GreaterThanOrEqual(trillion):
		return Fixed(v.Div(trillion), precision, RoundDown) + "T"
	case abs.GreaterThanOrEqual(billion):
		return Fixed(v.Div(billion), precision, RoundDown) + "B"
	case abs.GreaterThanOrEqual(million):
		return Fixed(v.Div(million), precision, RoundDown) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return Fixed(v.Div(thousand), precision, RoundDown) + "K"
	default:
		return Fixed(v, precision, RoundDown)
	}
}

// Multiple renders a leverage multiple such as "2.50x".
func Multiple(v decimal.Decimal) string {
	return Fixed(v, 2, RoundHalfUp) + "x"
}

func cut(v decimal.Decimal, precision int32, mode RoundMode) decimal.Decimal {
	if mode == RoundHalfUp {
		return v.Round(precision)
	}
	return v.Truncate(precision)
}

// groupThousands inserts separators into the integer part of a plain
// decimal string such as "-1234567.89".
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}
