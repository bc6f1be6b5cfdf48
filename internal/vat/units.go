// Package vat post-processes raw integers read from the vat contract into
// decimal amounts. Nothing here talks to a chain.
package vat

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Fixed-point scales used by the vat.
const (
	WadDecimals = 18
	RayDecimals = 27
	RadDecimals = 45
)

// ParseInt reads an unsigned 256-bit integer written in decimal or as
// 0x-prefixed hex. An empty string is zero.
func ParseInt(raw string) (*uint256.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return new(uint256.Int), nil
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		// FromHex rejects leading zeros.
		digits := strings.TrimLeft(raw[2:], "0")
		if digits == "" {
			return new(uint256.Int), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("parse hex integer %q: %w", raw, err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse integer %q: %w", raw, err)
	}
	return v, nil
}

// scaled converts v with the given number of implied decimals.
func scaled(v *uint256.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(v.ToBig(), -decimals)
}

// AmountFromWei converts a wad (1e18) integer.
func AmountFromWei(v *uint256.Int) decimal.Decimal { return scaled(v, WadDecimals) }

// AmountFromRay converts a ray (1e27) integer.
func AmountFromRay(v *uint256.Int) decimal.Decimal { return scaled(v, RayDecimals) }

// AmountFromRad converts a rad (1e45) integer.
func AmountFromRad(v *uint256.Int) decimal.Decimal { return scaled(v, RadDecimals) }

// FormatWad is the wad integer of d, truncated, in decimal. Negative
// amounts format as zero.
func FormatWad(d decimal.Decimal) string {
	if !d.IsPositive() {
		return "0"
	}
	return d.Shift(WadDecimals).Truncate(0).String()
}

func parseAmount(raw string, conv func(*uint256.Int) decimal.Decimal) (decimal.Decimal, error) {
	v, err := ParseInt(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return conv(v), nil
}
