package vat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountFromRay(t *testing.T) {
	v, err := ParseInt("1000000000000000000000000000")
	require.NoError(t, err)
	assert.True(t, AmountFromRay(v).Equal(decimal.NewFromInt(1)))
}

func TestParseInt(t *testing.T) {
	tests := map[string]uint64{
		"":       0,
		"0":      0,
		"42":     42,
		"0x2a":   42,
		"0x002a": 42,
		"0x0":    0,
		" 7 ":    7,
	}
	for in, want := range tests {
		v, err := ParseInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, v.Uint64(), in)
	}

	for _, bad := range []string{"-1", "abc", "0xzz"} {
		_, err := ParseInt(bad)
		assert.Error(t, err, bad)
	}
}

func TestDecodeUrn(t *testing.T) {
	u, err := DecodeUrn("2500000000000000000", "1000000000000000000000")
	require.NoError(t, err)
	assert.True(t, u.Collateral.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, u.NormalizedDebt.Equal(decimal.NewFromInt(1000)))
	assert.True(t, u.Debt(decimal.RequireFromString("1.02")).Equal(decimal.NewFromInt(1020)))

	_, err = DecodeUrn("x", "0")
	assert.ErrorContains(t, err, "urn ink")
}

func TestRawUrnDecode(t *testing.T) {
	raw := RawUrn{Ink: FormatWad(decimal.RequireFromString("2.5")), Art: FormatWad(decimal.NewFromInt(1000))}
	assert.Equal(t, "2500000000000000000", raw.Ink)

	u, err := raw.Decode()
	require.NoError(t, err)
	assert.True(t, u.Collateral.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, u.NormalizedDebt.Equal(decimal.NewFromInt(1000)))

	_, err = RawUrn{Ink: "0", Art: "-5"}.Decode()
	assert.ErrorContains(t, err, "urn art")
}

func TestFormatWad(t *testing.T) {
	assert.Equal(t, "0", FormatWad(decimal.Zero))
	assert.Equal(t, "0", FormatWad(decimal.NewFromInt(-3)))
	assert.Equal(t, "1", FormatWad(decimal.RequireFromString("0.0000000000000000019")))
	assert.Equal(t, "1000000000000000000", FormatWad(decimal.NewFromInt(1)))
}

func TestAmountFromRad(t *testing.T) {
	v, err := ParseInt("5" + zeros(45+3))
	require.NoError(t, err)
	assert.True(t, AmountFromRad(v).Equal(decimal.NewFromInt(5000)))
	assert.True(t, AmountFromWei(v).Equal(decimal.RequireFromString("5"+zeros(30))))
}

func TestDecodeIlk(t *testing.T) {
	ilk, err := DecodeIlk(RawIlk{
		Art:  "5000000000000000000000",
		Rate: "1050000000000000000000000000",
		Spot: "0x" + "0",
		Line: "1" + zeros(45+6),
		Dust: "5" + zeros(45+3),
	})
	require.NoError(t, err)
	assert.True(t, ilk.NormalizedIlkDebt.Equal(decimal.NewFromInt(5000)))
	assert.True(t, ilk.DebtScalingFactor.Equal(decimal.RequireFromString("1.05")))
	assert.True(t, ilk.MaxDebtPerUnitCollateral.IsZero())
	assert.True(t, ilk.DebtCeiling.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, ilk.DebtFloor.Equal(decimal.NewFromInt(5000)))

	_, err = DecodeIlk(RawIlk{Rate: "nope"})
	assert.ErrorContains(t, err, "ilk rate")
}

func TestIlkKey(t *testing.T) {
	key, err := IlkKey("ETH-A")
	require.NoError(t, err)
	assert.Equal(t, "0x4554482d41000000000000000000000000000000000000000000000000000000", key.Hex())
	assert.Equal(t, "ETH-A", IlkName(key))

	_, err = IlkKey("THIS-ILK-NAME-IS-FAR-TOO-LONG-FOR-BYTES32")
	assert.Error(t, err)
}

func TestParseProxyAddress(t *testing.T) {
	_, ok, err := ParseProxyAddress("")
	require.NoError(t, err)
	assert.False(t, ok)

	addr, ok, err := ParseProxyAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, byte(0xaa), addr[19])

	_, _, err = ParseProxyAddress("0x123")
	assert.Error(t, err)
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
