package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRatioPercentTruncates(t *testing.T) {
	assert.Equal(t, "12.34%", RatioPercent(d("0.12345"), DisplayPercent))
	assert.Equal(t, "12.35%", RatioPercent(d("0.12345"), Options{Precision: 2, RoundMode: RoundHalfUp}))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"truncates negative toward zero", "-3.339", DisplayPercent, "-3.33%"},
		{"tiny negative collapses to zero", "-0.001", DisplayPercent, "0.00%"},
		{"plus on positive", "5", Options{Precision: 1, Plus: true}, "+5.0%"},
		{"no plus on zero", "0", Options{Precision: 1, Plus: true}, "0.0%"},
		{"precision zero", "150.9", Options{Precision: 0}, "150%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(d(tt.in), tt.opts))
		})
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1,234.56", Amount(d("1234.5678"), "USD"))
	assert.Equal(t, "1,234.5678", Amount(d("1234.56789"), "DAI"))
	assert.Equal(t, "12.34567", Amount(d("12.345678"), "ETH"))
	assert.Equal(t, "-1,234,567.00", Amount(d("-1234567"), "USD"))
	assert.Equal(t, "999.00", Amount(d("999"), "USD"))
}

func TestUSD(t *testing.T) {
	assert.Equal(t, "$2,000.00", USD(d("2000")))
	assert.Equal(t, "-$12.50", USD(d("-12.5")))
	assert.Equal(t, "$0.00", USD(d("-0.001")))
}

func TestCryptoBalance(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"0.00001":    "<0.0001",
		"0.123456":   "0.1234",
		"9.99999":    "9.9999",
		"12345.678":  "12,345.67",
		"2500000":    "2.50M",
		"-0.00001":   "<0.0001",
		"7300000000": "7.30B",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, CryptoBalance(d(in)))
		})
	}
}

func TestShorthandAndMultiple(t *testing.T) {
	assert.Equal(t, "1.50K", Shorthand(d("1500"), 2))
	assert.Equal(t, "3.00T", Shorthand(d("3000000000000"), 2))
	assert.Equal(t, "2.50x", Multiple(d("2.5")))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1,000", groupThousands("1000"))
	assert.Equal(t, "100", groupThousands("100"))
	assert.Equal(t, "-12,345,678.9", groupThousands("-12345678.9"))
}
