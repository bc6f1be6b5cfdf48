package vault

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ethA() IlkData {
	return IlkData{
		Ilk:                               "ETH-A",
		Token:                             "ETH",
		LiquidationRatio:                  d("1.5"),
		StabilityFee:                      d("0.02"),
		LiquidationPenalty:                d("0.13"),
		CollateralizationDangerThreshold:  d("1.75"),
		CollateralizationWarningThreshold: d("2"),
	}
}

func TestCollRatioColor(t *testing.T) {
	ilk := ethA()
	tests := []struct {
		name  string
		ratio string
		want  RiskColor
	}{
		{"below liquidation", "1.2", RiskDanger},
		{"at liquidation ratio", "1.5", RiskDanger},
		{"inside danger band", "1.6", RiskDanger},
		{"at danger threshold", "1.75", RiskDanger},
		{"just above danger", "1.7500001", RiskWarning},
		{"at warning threshold", "2", RiskWarning},
		{"above warning", "2.0001", RiskSuccess},
		{"healthy", "3", RiskSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollRatioColor(d(tt.ratio), ilk, false))
		})
	}
}

func TestCollRatioColorZeroIsNeutral(t *testing.T) {
	for _, ilk := range []IlkData{ethA(), {}} {
		for _, empty := range []bool{true, false} {
			assert.Equal(t, RiskNeutral, CollRatioColor(decimal.Zero, ilk, empty))
		}
	}
}

func TestCollRatioColorEmptyInputsSuppressRisk(t *testing.T) {
	assert.Equal(t, RiskSuccess, CollRatioColor(d("1.2"), ethA(), true))
	assert.Equal(t, RiskSuccess, CollRatioColor(d("1.8"), ethA(), true))
}

func TestAfterPillColors(t *testing.T) {
	assert.Equal(t, PillColors{Color: "onError", Bg: "error"}, AfterPillColors(RiskDanger))
	assert.Equal(t, PillColors{Color: "onWarning", Bg: "warning"}, AfterPillColors(RiskWarning))
	assert.Equal(t, PillColors{Color: "onSuccess", Bg: "success"}, AfterPillColors(RiskSuccess))
	assert.Equal(t, AfterPillColors(RiskSuccess), AfterPillColors(RiskNeutral))
}

func TestPriceChangeColor(t *testing.T) {
	assert.Equal(t, ChangeMuted, PriceChangeColor(decimal.Zero))
	assert.Equal(t, ChangeUp, PriceChangeColor(d("0.01")))
	assert.Equal(t, ChangeDown, PriceChangeColor(d("-4")))
	assert.Equal(t, "text.muted", ChangeMuted.String())
	assert.Equal(t, "primary", RiskNeutral.String())
}
