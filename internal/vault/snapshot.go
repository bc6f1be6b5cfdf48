package vault

import (
	"time"

	"github.com/shopspring/decimal"
)

// IlkData holds the risk parameters of a collateral type.
type IlkData struct {
	Ilk   string `json:"ilk"`
	Token string `json:"token"`

	LiquidationRatio                  decimal.Decimal `json:"liquidationRatio"`
	StabilityFee                      decimal.Decimal `json:"stabilityFee"`
	LiquidationPenalty                decimal.Decimal `json:"liquidationPenalty"`
	CollateralizationDangerThreshold  decimal.Decimal `json:"collateralizationDangerThreshold"`
	CollateralizationWarningThreshold decimal.Decimal `json:"collateralizationWarningThreshold"`

	DebtCeiling              decimal.Decimal `json:"debtCeiling"`
	DebtFloor                decimal.Decimal `json:"debtFloor"`
	DebtScalingFactor        decimal.Decimal `json:"debtScalingFactor"`
	MaxDebtPerUnitCollateral decimal.Decimal `json:"maxDebtPerUnitCollateral"`
	NormalizedIlkDebt        decimal.Decimal `json:"normalizedIlkDebt"`
}

// Rate is the debt scaling factor, or 1 when the market leaves it unset.
func (i IlkData) Rate() decimal.Decimal {
	if !i.DebtScalingFactor.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return i.DebtScalingFactor
}

// IlkDebt is the total debt drawn against the ilk.
func (i IlkData) IlkDebt() decimal.Decimal {
	return i.NormalizedIlkDebt.Mul(i.DebtScalingFactor)
}

// IlkDebtAvailable is the room left under the debt ceiling, never negative.
func (i IlkData) IlkDebtAvailable() decimal.Decimal {
	room := i.DebtCeiling.Sub(i.IlkDebt())
	if room.IsNegative() {
		return decimal.Zero
	}
	return room
}

// PriceInfo describes the oracle price of the collateral.
type PriceInfo struct {
	CurrentCollateralPrice          decimal.Decimal `json:"currentCollateralPrice"`
	NextCollateralPrice             decimal.Decimal `json:"nextCollateralPrice"`
	DateNextCollateralPrice         time.Time       `json:"dateNextCollateralPrice"`
	IsStaticCollateralPrice         bool            `json:"isStaticCollateralPrice"`
	CollateralPricePercentageChange decimal.Decimal `json:"collateralPricePercentageChange"`
}

// VaultPosition is an existing vault as read from the chain.
type VaultPosition struct {
	Token               string          `json:"token"`
	LockedCollateral    decimal.Decimal `json:"lockedCollateral"`
	LockedCollateralUSD decimal.Decimal `json:"lockedCollateralUSD"`
	Debt                decimal.Decimal `json:"debt"`
}

// StopLoss holds stop-loss protection settings for multiply vaults.
type StopLoss struct {
	IsProtected  bool                `json:"isProtected"`
	SlRatio      decimal.Decimal     `json:"slRatio"`
	AfterSlRatio decimal.NullDecimal `json:"afterSlRatio"`
}

// Snapshot is one immutable state of an open-vault session. The producer
// replaces it wholesale on every change; nothing in this package mutates
// it.
type Snapshot struct {
	Stage Stage  `json:"stage"`
	ID    string `json:"id,omitempty"`
	Token string `json:"token"`
	Ilk   string `json:"ilk"`

	CanProgress                bool   `json:"canProgress"`
	CanRegress                 bool   `json:"canRegress"`
	IsLoadingStage             bool   `json:"isLoadingStage"`
	ProxyAddress               string `json:"proxyAddress,omitempty"`
	InsufficientAllowance      bool   `json:"insufficientAllowance"`
	InputAmountsEmpty          bool   `json:"inputAmountsEmpty"`
	CustomAllowanceAmountEmpty bool   `json:"customAllowanceAmountEmpty"`

	// Errors explain why editing cannot progress.
	Errors []string `json:"errors,omitempty"`

	Progress    Action `json:"-"`
	Regress     Action `json:"-"`
	CreateProxy Action `json:"-"`

	DepositAmount                 decimal.NullDecimal `json:"depositAmount"`
	AllowanceAmount               decimal.NullDecimal `json:"allowanceAmount"`
	DepositAmountUSD              decimal.NullDecimal `json:"depositAmountUSD"`
	GenerateAmount                decimal.NullDecimal `json:"generateAmount"`
	AfterFreeCollateral           decimal.Decimal     `json:"afterFreeCollateral"`
	MaxGenerateAmountCurrentPrice decimal.Decimal     `json:"maxGenerateAmountCurrentPrice"`
	AfterCollateralizationRatio   decimal.Decimal     `json:"afterCollateralizationRatio"`
	AfterLiquidationPrice         decimal.Decimal     `json:"afterLiquidationPrice"`

	IlkData   IlkData   `json:"ilkData"`
	PriceInfo PriceInfo `json:"priceInfo"`

	// Manage and multiply views.
	Vault                *VaultPosition      `json:"vault,omitempty"`
	MarketPrice          decimal.NullDecimal `json:"marketPrice"`
	LiquidationPrice     decimal.Decimal     `json:"liquidationPrice"`
	NetValueUSD          decimal.Decimal     `json:"netValueUSD"`
	AfterNetValueUSD     decimal.Decimal     `json:"afterNetValueUSD"`
	CurrentPnL           decimal.Decimal     `json:"currentPnL"`
	TotalGasSpentUSD     decimal.Decimal     `json:"totalGasSpentUSD"`
	StopLoss             StopLoss            `json:"stopLoss"`
	Multiply             decimal.NullDecimal `json:"multiply"`
	AfterOutstandingDebt decimal.Decimal     `json:"afterOutstandingDebt"`
	TotalCollateral      decimal.NullDecimal `json:"totalCollateral"`
}

// HasProxy reports whether the user already owns a proxy.
func (s Snapshot) HasProxy() bool {
	return s.ProxyAddress != ""
}

// ShowAfterPill reports whether "after" values are shown next to figures:
// only when the user entered amounts and the vault is not yet open.
func (s Snapshot) ShowAfterPill() bool {
	return !s.InputAmountsEmpty && s.Stage != StageOpenSuccess
}

// orZero unwraps an optional decimal.
func orZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}

// Some wraps d as a present optional value.
func Some(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
