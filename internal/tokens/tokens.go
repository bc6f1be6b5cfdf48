package tokens

import (
	"slices"
	"strings"
)

// TagLPToken marks collateral that is itself a liquidity-pool share. Such
// collateral is valued through the oracle price rather than a market price.
const TagLPToken = "lp-token"

// Token is the display metadata for a collateral or debt token.
type Token struct {
	Symbol string
	Name   string
	Digits int // decimal places used when formatting amounts
	Tags   []string
}

// HasTag reports whether the token carries the given tag.
func (t Token) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// IsLPToken reports whether the token is an LP share.
func (t Token) IsLPToken() bool {
	return t.HasTag(TagLPToken)
}

// defaultDigits applies to tokens missing from the registry.
const defaultDigits = 5

var registry = map[string]Token{
	"ETH":            {Symbol: "ETH", Name: "Ether", Digits: 5},
	"WBTC":           {Symbol: "WBTC", Name: "Wrapped Bitcoin", Digits: 5},
	"RENBTC":         {Symbol: "RENBTC", Name: "renBTC", Digits: 5},
	"WSTETH":         {Symbol: "WSTETH", Name: "Wrapped stETH", Digits: 5},
	"LINK":           {Symbol: "LINK", Name: "Chainlink", Digits: 5},
	"YFI":            {Symbol: "YFI", Name: "yearn.finance", Digits: 5},
	"MANA":           {Symbol: "MANA", Name: "Decentraland", Digits: 5},
	"DAI":            {Symbol: "DAI", Name: "Dai", Digits: 4},
	"USDC":           {Symbol: "USDC", Name: "USD Coin", Digits: 4},
	"USD":            {Symbol: "USD", Name: "US Dollar", Digits: 2},
	"UNIV2DAIETH":    {Symbol: "UNIV2DAIETH", Name: "UNI-V2 DAI/ETH", Digits: 5, Tags: []string{TagLPToken}},
	"UNIV2USDCETH":   {Symbol: "UNIV2USDCETH", Name: "UNI-V2 USDC/ETH", Digits: 5, Tags: []string{TagLPToken}},
	"GUNIV3DAIUSDC1": {Symbol: "GUNIV3DAIUSDC1", Name: "G-UNI DAI/USDC 0.05%", Digits: 5, Tags: []string{TagLPToken}},
	"GUNIV3DAIUSDC2": {Symbol: "GUNIV3DAIUSDC2", Name: "G-UNI DAI/USDC 0.01%", Digits: 5, Tags: []string{TagLPToken}},
}

// Get returns metadata for symbol. Lookup is case-insensitive; unknown
// symbols get a generic entry with default precision and no tags.
func Get(symbol string) Token {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if t, ok := registry[key]; ok {
		return t
	}
	return Token{Symbol: key, Name: key, Digits: defaultDigits}
}

// Known reports whether symbol is in the registry.
func Known(symbol string) bool {
	_, ok := registry[strings.ToUpper(strings.TrimSpace(symbol))]
	return ok
}

// TokenForIlk derives the collateral token from an ilk name such as
// "ETH-A" or "GUNIV3DAIUSDC1-A".
func TokenForIlk(ilk string) string {
	if i := strings.LastIndex(ilk, "-"); i > 0 {
		return strings.ToUpper(ilk[:i])
	}
	return strings.ToUpper(ilk)
}
