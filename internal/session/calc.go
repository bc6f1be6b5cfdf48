package session

import (
	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// Input errors shown under the editing form.
const (
	ErrGenerateExceedsMax        = "Generate amount exceeds the Dai available for this deposit"
	ErrGenerateBelowDebtFloor    = "Generate amount is below the debt floor"
	ErrGenerateExceedsCeiling    = "Generate amount exceeds the debt ceiling"
	ErrGenerateWithoutCollateral = "Deposit collateral to generate Dai"
)

// inputs is what the user typed in the editing form.
type inputs struct {
	deposit         decimal.NullDecimal
	generate        decimal.NullDecimal
	customAllowance decimal.NullDecimal
}

// figures are the values derived from the market and the inputs.
type figures struct {
	depositUSD            decimal.NullDecimal
	maxGenerate           decimal.Decimal
	afterCollRatio        decimal.Decimal
	afterLiquidationPrice decimal.Decimal
	afterFreeCollateral   decimal.Decimal
	insufficientAllowance bool
	inputAmountsEmpty     bool
	errors                []string
}

func positive(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid || n.Decimal.IsNegative() {
		return decimal.Zero
	}
	return n.Decimal
}

// compute derives figures from the market, the inputs and the granted
// allowance.
func compute(m feed.Market, in inputs, allowance decimal.Decimal) figures {
	price := m.PriceInfo.CurrentCollateralPrice
	liqRatio := m.IlkData.LiquidationRatio
	deposit := positive(in.deposit)
	generate := positive(in.generate)

	f := figures{
		inputAmountsEmpty:   !in.deposit.Valid && !in.generate.Valid,
		afterFreeCollateral: deposit,
	}
	if in.deposit.Valid {
		f.depositUSD = vault.Some(deposit.Mul(price))
	}
	depositUSD := f.depositUSD.Decimal

	if !liqRatio.IsZero() {
		f.maxGenerate = depositUSD.Div(liqRatio)
	}
	if generate.IsPositive() {
		f.afterCollRatio = depositUSD.Div(generate)
	}
	if deposit.IsPositive() {
		f.afterLiquidationPrice = generate.Mul(liqRatio).Div(deposit)
	}
	if price.IsPositive() {
		f.afterFreeCollateral = deposit.Sub(generate.Mul(liqRatio).Div(price))
	}

	// ETH is sent with the transaction and needs no allowance.
	if m.Token != "ETH" && deposit.IsPositive() {
		f.insufficientAllowance = allowance.LessThan(deposit)
	}

	if generate.IsPositive() {
		switch {
		case !deposit.IsPositive():
			f.errors = append(f.errors, ErrGenerateWithoutCollateral)
		case generate.GreaterThan(f.maxGenerate):
			f.errors = append(f.errors, ErrGenerateExceedsMax)
		}
		if generate.LessThan(m.IlkData.DebtFloor) {
			f.errors = append(f.errors, ErrGenerateBelowDebtFloor)
		}
		if !m.IlkData.DebtCeiling.IsZero() && generate.GreaterThan(m.IlkData.IlkDebtAvailable()) {
			f.errors = append(f.errors, ErrGenerateExceedsCeiling)
		}
	}
	return f
}

// DescribeAmount renders an optional amount for log lines.
func DescribeAmount(n decimal.NullDecimal, token string) string {
	if !n.Valid {
		return format.Placeholder
	}
	return format.Amount(n.Decimal, token) + " " + token
}
