package vat

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// IlkKey is the bytes32 form of an ilk name: its UTF-8 bytes, right padded
// with zeros. Names longer than 32 bytes are rejected.
func IlkKey(ilk string) (common.Hash, error) {
	var key common.Hash
	if len(ilk) > common.HashLength {
		return key, fmt.Errorf("ilk %q longer than %d bytes", ilk, common.HashLength)
	}
	copy(key[:], ilk)
	return key, nil
}

// IlkName reverses IlkKey.
func IlkName(key common.Hash) string {
	n := len(key)
	for n > 0 && key[n-1] == 0 {
		n--
	}
	return string(key[:n])
}

// Urn is a decoded vat.urns(ilk, urn) result.
type Urn struct {
	Collateral     decimal.Decimal // ink, wad
	NormalizedDebt decimal.Decimal // art, wad
}

// Debt is the urn's debt at the given rate.
func (u Urn) Debt(rate decimal.Decimal) decimal.Decimal {
	return u.NormalizedDebt.Mul(rate)
}

// DecodeUrn converts the raw ink and art integers.
func DecodeUrn(ink, art string) (Urn, error) {
	collateral, err := parseAmount(ink, AmountFromWei)
	if err != nil {
		return Urn{}, fmt.Errorf("urn ink: %w", err)
	}
	debt, err := parseAmount(art, AmountFromWei)
	if err != nil {
		return Urn{}, fmt.Errorf("urn art: %w", err)
	}
	return Urn{Collateral: collateral, NormalizedDebt: debt}, nil
}

// RawUrn is the vat.urns(ilk, urn) tuple as integer strings.
type RawUrn struct {
	Ink string `json:"ink"` // wad
	Art string `json:"art"` // wad
}

// Decode is DecodeUrn on the tuple.
func (r RawUrn) Decode() (Urn, error) {
	return DecodeUrn(r.Ink, r.Art)
}

// RawIlk is the vat.ilks(ilk) tuple as integer strings.
type RawIlk struct {
	Art  string `json:"Art"`  // wad
	Rate string `json:"rate"` // ray
	Spot string `json:"spot"` // ray
	Line string `json:"line"` // rad
	Dust string `json:"dust"` // rad
}

// Ilk is a decoded vat.ilks result.
type Ilk struct {
	NormalizedIlkDebt        decimal.Decimal
	DebtScalingFactor        decimal.Decimal
	MaxDebtPerUnitCollateral decimal.Decimal
	DebtCeiling              decimal.Decimal
	DebtFloor                decimal.Decimal
}

// DecodeIlk converts every field of raw to its decimal amount.
func DecodeIlk(raw RawIlk) (Ilk, error) {
	var (
		ilk Ilk
		err error
	)
	fields := []struct {
		name string
		raw  string
		conv func(*uint256.Int) decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"Art", raw.Art, AmountFromWei, &ilk.NormalizedIlkDebt},
		{"rate", raw.Rate, AmountFromRay, &ilk.DebtScalingFactor},
		{"spot", raw.Spot, AmountFromRay, &ilk.MaxDebtPerUnitCollateral},
		{"line", raw.Line, AmountFromRad, &ilk.DebtCeiling},
		{"dust", raw.Dust, AmountFromRad, &ilk.DebtFloor},
	}
	for _, f := range fields {
		if *f.dst, err = parseAmount(f.raw, f.conv); err != nil {
			return Ilk{}, fmt.Errorf("ilk %s: %w", f.name, err)
		}
	}
	return ilk, nil
}

// ParseProxyAddress validates a hex proxy address. The empty string means
// no proxy.
func ParseProxyAddress(s string) (common.Address, bool, error) {
	if s == "" {
		return common.Address{}, false, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, false, fmt.Errorf("invalid proxy address %q", s)
	}
	return common.HexToAddress(s), true, nil
}
