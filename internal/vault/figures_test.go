package vault

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDynamicStopPrice(t *testing.T) {
	got := DynamicStopPrice(d("200"), d("1.5"), d("1.6"))
	assert.Equal(t, "213.33", got.Truncate(2).StringFixed(2))
	assert.True(t, got.Sub(d("213.3333333")).Abs().LessThan(d("0.000001")))

	assert.True(t, DynamicStopPrice(d("200"), decimal.Zero, d("1.6")).IsZero())
}

func TestAfterDynamicStopPrice(t *testing.T) {
	liq := d("1.5")
	assert.True(t, AfterDynamicStopPrice(decimal.NullDecimal{}, Some(d("1.6")), liq).IsZero())
	assert.True(t, AfterDynamicStopPrice(Some(d("200")), decimal.NullDecimal{}, liq).IsZero())

	got := AfterDynamicStopPrice(Some(d("300")), Some(d("2")), liq)
	assert.True(t, got.Equal(d("400")), got.String())
}

func TestNextPriceDiff(t *testing.T) {
	p := PriceInfo{CurrentCollateralPrice: d("2000"), NextCollateralPrice: d("2100")}
	assert.True(t, NextPriceDiff(p).Equal(d("5")))

	p.NextCollateralPrice = d("1900")
	assert.True(t, NextPriceDiff(p).Equal(d("-5")))

	assert.True(t, NextPriceDiff(PriceInfo{NextCollateralPrice: d("10")}).IsZero())
}

func TestMinutesToNextPrice(t *testing.T) {
	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	p := PriceInfo{DateNextCollateralPrice: now.Add(30*time.Minute + 59*time.Second)}
	assert.Equal(t, 30, MinutesToNextPrice(p, now))
	assert.False(t, NextPriceImminent(30))

	p.DateNextCollateralPrice = now.Add(90 * time.Second)
	assert.Equal(t, 1, MinutesToNextPrice(p, now))
	assert.True(t, NextPriceImminent(1))
}

func TestLiquidationPriceDifference(t *testing.T) {
	diff := LiquidationPriceDifference(d("1500"), d("2000"))
	assert.True(t, diff.Valid)
	assert.True(t, diff.Decimal.Equal(d("0.25")))
	assert.Equal(t, "below", RelativeWord(diff.Decimal))

	diff = LiquidationPriceDifference(d("2500"), d("2000"))
	assert.Equal(t, "above", RelativeWord(diff.Decimal))

	assert.False(t, LiquidationPriceDifference(d("1500"), decimal.Zero).Valid)
}

func TestNetValueBreakdown(t *testing.T) {
	t.Run("no vault", func(t *testing.T) {
		nv := NetValueBreakdown(Snapshot{PriceInfo: PriceInfo{CurrentCollateralPrice: d("2000")}})
		assert.False(t, nv.HasVault)
		assert.True(t, nv.ShowCollateralColumn)
		assert.True(t, nv.QuotedPrice.Equal(d("2000")))
	})

	t.Run("market price", func(t *testing.T) {
		nv := NetValueBreakdown(Snapshot{
			Vault:       &VaultPosition{Token: "ETH", LockedCollateral: d("10"), Debt: d("5000")},
			MarketPrice: Some(d("2500")),
			NetValueUSD: d("20000"),
			PriceInfo:   PriceInfo{CurrentCollateralPrice: d("2000")},
		})
		assert.True(t, nv.ShowCollateralColumn)
		assert.True(t, nv.QuotedPrice.Equal(d("2500")))
		assert.True(t, nv.LockedCollateralUSD.Equal(d("25000")))
		assert.True(t, nv.DebtInCollateral.Equal(d("2")))
		assert.True(t, nv.NetValueInCollateral.Equal(d("8")))
	})

	t.Run("market price missing falls back to zero", func(t *testing.T) {
		nv := NetValueBreakdown(Snapshot{
			Vault:     &VaultPosition{Token: "ETH", LockedCollateral: d("10"), Debt: d("5000")},
			PriceInfo: PriceInfo{CurrentCollateralPrice: d("2000")},
		})
		assert.True(t, nv.LockedCollateralUSD.IsZero())
		assert.True(t, nv.DebtInCollateral.IsZero())
		assert.True(t, nv.QuotedPrice.Equal(d("2000")))
	})

	t.Run("lp token uses oracle", func(t *testing.T) {
		nv := NetValueBreakdown(Snapshot{
			Vault: &VaultPosition{
				Token:               "GUNIV3DAIUSDC1",
				LockedCollateral:    d("100"),
				LockedCollateralUSD: d("105"),
				Debt:                d("50"),
			},
			MarketPrice: Some(d("999")),
			NetValueUSD: d("55"),
			PriceInfo:   PriceInfo{CurrentCollateralPrice: d("1.1")},
		})
		assert.True(t, nv.IsLPToken)
		assert.False(t, nv.ShowCollateralColumn)
		assert.True(t, nv.LockedCollateralUSD.Equal(d("105")))
		assert.True(t, nv.NetValueInCollateral.Equal(d("50")))
	})
}

func TestIlkDebtAvailable(t *testing.T) {
	ilk := IlkData{DebtCeiling: d("1000"), NormalizedIlkDebt: d("400"), DebtScalingFactor: d("2")}
	assert.True(t, ilk.IlkDebt().Equal(d("800")))
	assert.True(t, ilk.IlkDebtAvailable().Equal(d("200")))

	ilk.NormalizedIlkDebt = d("600")
	assert.True(t, ilk.IlkDebtAvailable().IsZero())
}
