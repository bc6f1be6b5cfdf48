package vault

import (
	"github.com/shopspring/decimal"
)

// RiskColor classifies a collateralization ratio.
type RiskColor int

const (
	RiskNeutral RiskColor = iota
	RiskDanger
	RiskWarning
	RiskSuccess
)

// String returns the theme token name for the color.
func (c RiskColor) String() string {
	switch c {
	case RiskDanger:
		return "onError"
	case RiskWarning:
		return "onWarning"
	case RiskSuccess:
		return "onSuccess"
	default:
		return "primary"
	}
}

// CollRatioColor classifies ratio against the ilk thresholds. A zero ratio
// is neutral. Danger covers [liquidationRatio, dangerThreshold] and anything
// below the liquidation ratio; warning covers (dangerThreshold,
// warningThreshold]. Both are suppressed while the inputs are empty.
func CollRatioColor(ratio decimal.Decimal, ilk IlkData, inputAmountsEmpty bool) RiskColor {
	if ratio.IsZero() {
		return RiskNeutral
	}
	if inputAmountsEmpty {
		return RiskSuccess
	}

	atRiskDanger := ratio.GreaterThanOrEqual(ilk.LiquidationRatio) &&
		ratio.LessThanOrEqual(ilk.CollateralizationDangerThreshold)
	underCollateralized := ratio.LessThan(ilk.LiquidationRatio)
	atRiskWarning := ratio.GreaterThan(ilk.CollateralizationDangerThreshold) &&
		ratio.LessThanOrEqual(ilk.CollateralizationWarningThreshold)

	switch {
	case atRiskDanger || underCollateralized:
		return RiskDanger
	case atRiskWarning:
		return RiskWarning
	default:
		return RiskSuccess
	}
}

// SnapshotCollRatioColor classifies the snapshot's after-ratio.
func SnapshotCollRatioColor(s Snapshot) RiskColor {
	return CollRatioColor(s.AfterCollateralizationRatio, s.IlkData, s.InputAmountsEmpty)
}

// PillColors is the foreground/background pair of an "after" pill.
type PillColors struct {
	Color string
	Bg    string
}

// AfterPillColors maps a risk color to its pill colors. Neutral uses the
// success pill.
func AfterPillColors(c RiskColor) PillColors {
	switch c {
	case RiskDanger:
		return PillColors{Color: "onError", Bg: "error"}
	case RiskWarning:
		return PillColors{Color: "onWarning", Bg: "warning"}
	default:
		return PillColors{Color: "onSuccess", Bg: "success"}
	}
}

// ChangeColor classifies the sign of a price change.
type ChangeColor int

const (
	ChangeMuted ChangeColor = iota
	ChangeUp
	ChangeDown
)

// String returns the theme token name for the color.
func (c ChangeColor) String() string {
	switch c {
	case ChangeUp:
		return "onSuccess"
	case ChangeDown:
		return "onError"
	default:
		return "text.muted"
	}
}

// PriceChangeColor classifies change by sign.
func PriceChangeColor(change decimal.Decimal) ChangeColor {
	switch change.Sign() {
	case 0:
		return ChangeMuted
	case 1:
		return ChangeUp
	default:
		return ChangeDown
	}
}
