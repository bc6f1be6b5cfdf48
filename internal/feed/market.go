// Package feed delivers market data and snapshots to the shell.
package feed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/config"
	"github.com/Dallionking/vaultdesk/internal/tokens"
	"github.com/Dallionking/vaultdesk/internal/vat"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// Market is the decoded state of one ilk.
type Market struct {
	Ilk         string
	Token       string
	IlkData     vault.IlkData
	PriceInfo   vault.PriceInfo
	MarketPrice decimal.NullDecimal
}

// MarketFromSpec decodes the raw vat integers of spec and assembles the
// ilk data and price info.
func MarketFromSpec(spec config.MarketSpec) (Market, error) {
	raw, err := vat.DecodeIlk(spec.Vat)
	if err != nil {
		return Market{}, fmt.Errorf("market %s: %w", spec.Ilk, err)
	}

	token := spec.Token
	if token == "" {
		token = tokens.TokenForIlk(spec.Ilk)
	}

	return Market{
		Ilk:   spec.Ilk,
		Token: token,
		IlkData: vault.IlkData{
			Ilk:                               spec.Ilk,
			Token:                             token,
			LiquidationRatio:                  spec.LiquidationRatio,
			StabilityFee:                      spec.StabilityFee,
			LiquidationPenalty:                spec.LiquidationPenalty,
			CollateralizationDangerThreshold:  spec.CollateralizationDangerThreshold,
			CollateralizationWarningThreshold: spec.CollateralizationWarningThreshold,
			DebtCeiling:                       raw.DebtCeiling,
			DebtFloor:                         raw.DebtFloor,
			DebtScalingFactor:                 raw.DebtScalingFactor,
			MaxDebtPerUnitCollateral:          raw.MaxDebtPerUnitCollateral,
			NormalizedIlkDebt:                 raw.NormalizedIlkDebt,
		},
		PriceInfo: vault.PriceInfo{
			CurrentCollateralPrice:          spec.Price.Current,
			NextCollateralPrice:             spec.Price.Next,
			DateNextCollateralPrice:         spec.Price.NextUpdate,
			IsStaticCollateralPrice:         spec.Price.Static,
			CollateralPricePercentageChange: spec.Price.PercentageChange,
		},
		MarketPrice: spec.MarketPrice,
	}, nil
}

// LoadMarket reads path and decodes the market for ilk.
func LoadMarket(path, ilk string) (Market, error) {
	mf, err := config.LoadMarketFile(path)
	if err != nil {
		return Market{}, err
	}
	spec, err := mf.Find(ilk)
	if err != nil {
		return Market{}, err
	}
	return MarketFromSpec(*spec)
}

// MarketUpdate is one reload of the market file.
type MarketUpdate struct {
	Market Market
	Err    error
	Time   time.Time
}
