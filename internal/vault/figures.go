package vault

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/tokens"
)

var hundred = decimal.NewFromInt(100)

// NextPriceDiff is the relative move from the current to the next oracle
// price, in percent. It is zero when the current price is unknown.
func NextPriceDiff(p PriceInfo) decimal.Decimal {
	if p.CurrentCollateralPrice.IsZero() {
		return decimal.Zero
	}
	return p.NextCollateralPrice.
		Sub(p.CurrentCollateralPrice).
		Div(p.CurrentCollateralPrice).
		Mul(hundred)
}

// MinutesToNextPrice is the whole number of minutes until the next oracle
// update, truncated toward zero.
func MinutesToNextPrice(p PriceInfo, now time.Time) int {
	return int(p.DateNextCollateralPrice.Sub(now).Minutes())
}

// NextPriceImminent reports whether the next price may land any moment.
func NextPriceImminent(minutes int) bool {
	return minutes < 2
}

// DynamicStopPrice is the stop-loss trigger price derived from the
// liquidation price: liquidationPrice / liquidationRatio * slRatio. It is
// zero when the liquidation ratio is zero.
func DynamicStopPrice(liquidationPrice, liquidationRatio, slRatio decimal.Decimal) decimal.Decimal {
	if liquidationRatio.IsZero() {
		return decimal.Zero
	}
	return liquidationPrice.Div(liquidationRatio).Mul(slRatio)
}

// AfterDynamicStopPrice is DynamicStopPrice for the after-values, or zero
// when either after input is missing.
func AfterDynamicStopPrice(afterLiquidationPrice, afterSlRatio decimal.NullDecimal, liquidationRatio decimal.Decimal) decimal.Decimal {
	if !afterLiquidationPrice.Valid || !afterSlRatio.Valid {
		return decimal.Zero
	}
	return DynamicStopPrice(afterLiquidationPrice.Decimal, liquidationRatio, afterSlRatio.Decimal)
}

// LiquidationPriceDifference is the distance of the liquidation price below
// the current price, as a fraction of the current price. Negative values
// mean the liquidation price sits above the current price. It is absent
// when the current price is zero.
func LiquidationPriceDifference(liquidationPrice, currentPrice decimal.Decimal) decimal.NullDecimal {
	if currentPrice.IsZero() {
		return decimal.NullDecimal{}
	}
	return Some(currentPrice.Sub(liquidationPrice).Div(currentPrice))
}

// RelativeWord describes the sign of a liquidation price difference.
func RelativeWord(diff decimal.Decimal) string {
	if diff.IsNegative() {
		return "above"
	}
	return "below"
}

// NetValue is the breakdown shown in the net value explainer.
type NetValue struct {
	// IsLPToken reports collateral valued through the oracle price.
	IsLPToken bool
	// ShowCollateralColumn is false for LP collateral, whose value is not
	// meaningful in collateral units.
	ShowCollateralColumn bool
	// QuotedPrice is the market price when known, else the oracle price.
	QuotedPrice decimal.Decimal

	LockedCollateral     decimal.Decimal
	LockedCollateralUSD  decimal.Decimal
	DebtInCollateral     decimal.Decimal
	Debt                 decimal.Decimal
	NetValueInCollateral decimal.Decimal
	NetValueUSD          decimal.Decimal
	TotalGasSpentUSD     decimal.Decimal
	CurrentPnL           decimal.Decimal
	Token                string
	HasVault             bool
}

// NetValueBreakdown values the vault. LP collateral uses the oracle price.
// Other collateral uses the market price and falls back to zero when no
// market price is known.
func NetValueBreakdown(s Snapshot) NetValue {
	oracle := s.PriceInfo.CurrentCollateralPrice
	nv := NetValue{
		QuotedPrice:      oracle,
		NetValueUSD:      s.NetValueUSD,
		TotalGasSpentUSD: s.TotalGasSpentUSD,
		CurrentPnL:       s.CurrentPnL,
	}
	if s.MarketPrice.Valid {
		nv.QuotedPrice = s.MarketPrice.Decimal
	}

	v := s.Vault
	if v == nil {
		nv.ShowCollateralColumn = true
		return nv
	}

	nv.HasVault = true
	nv.Token = v.Token
	nv.LockedCollateral = v.LockedCollateral
	nv.Debt = v.Debt
	nv.IsLPToken = tokens.Get(v.Token).IsLPToken()
	nv.ShowCollateralColumn = !nv.IsLPToken

	switch {
	case nv.IsLPToken:
		nv.LockedCollateralUSD = v.LockedCollateralUSD
		nv.DebtInCollateral = safeDiv(v.Debt, oracle)
		nv.NetValueInCollateral = safeDiv(s.NetValueUSD, oracle)
	case s.MarketPrice.Valid:
		market := s.MarketPrice.Decimal
		nv.LockedCollateralUSD = v.LockedCollateral.Mul(market)
		nv.DebtInCollateral = safeDiv(v.Debt, market)
		nv.NetValueInCollateral = safeDiv(s.NetValueUSD, market)
	}
	return nv
}

func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
