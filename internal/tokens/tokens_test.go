package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	eth := Get("eth")
	assert.Equal(t, "ETH", eth.Symbol)
	assert.Equal(t, 5, eth.Digits)
	assert.False(t, eth.IsLPToken())

	assert.Equal(t, 2, Get("USD").Digits)
	assert.Equal(t, 4, Get("DAI").Digits)
	assert.True(t, Get("GUNIV3DAIUSDC1").IsLPToken())
}

func TestGetUnknown(t *testing.T) {
	tok := Get("xyz")
	assert.Equal(t, "XYZ", tok.Symbol)
	assert.Equal(t, defaultDigits, tok.Digits)
	assert.False(t, Known("xyz"))
}

func TestTokenForIlk(t *testing.T) {
	cases := map[string]string{
		"ETH-A":            "ETH",
		"WBTC-C":           "WBTC",
		"GUNIV3DAIUSDC1-A": "GUNIV3DAIUSDC1",
		"eth":              "ETH",
	}
	for ilk, want := range cases {
		t.Run(ilk, func(t *testing.T) {
			assert.Equal(t, want, TokenForIlk(ilk))
		})
	}
}
