package session

import (
	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/vault"
)

// snapshot freezes st into an immutable vault snapshot. Action handles are
// bound to this session's command loop and to the stage of the snapshot; a
// handle taken from an older stage does nothing.
func (s *Session) snapshot(st *state) vault.Snapshot {
	m := st.market
	f := compute(m, st.in, st.allowance)
	if st.opened != nil {
		f = *st.opened
	}

	snap := vault.Snapshot{
		Stage: st.stage,
		ID:    st.vaultID,
		Token: m.Token,
		Ilk:   m.Ilk,

		CanProgress:                canProgress(st, f),
		CanRegress:                 canRegress(st),
		IsLoadingStage:             pending(st),
		InsufficientAllowance:      f.insufficientAllowance,
		InputAmountsEmpty:          f.inputAmountsEmpty,
		CustomAllowanceAmountEmpty: !st.in.customAllowance.Valid,
		Errors:                     append([]string(nil), f.errors...),

		DepositAmount:                 st.in.deposit,
		AllowanceAmount:               st.in.customAllowance,
		DepositAmountUSD:              f.depositUSD,
		GenerateAmount:                st.in.generate,
		AfterFreeCollateral:           f.afterFreeCollateral,
		MaxGenerateAmountCurrentPrice: f.maxGenerate,
		AfterCollateralizationRatio:   f.afterCollRatio,
		AfterLiquidationPrice:         f.afterLiquidationPrice,

		IlkData:     m.IlkData,
		PriceInfo:   m.PriceInfo,
		MarketPrice: m.MarketPrice,
	}
	if hasProxy(st) {
		snap.ProxyAddress = st.proxy.Hex()
	}

	deposit, generate := positive(st.in.deposit), positive(st.in.generate)
	depositUSD := f.depositUSD.Decimal
	net := depositUSD.Sub(generate)

	snap.AfterNetValueUSD = net
	snap.AfterOutstandingDebt = generate
	snap.TotalCollateral = vault.Some(deposit)
	if net.IsPositive() {
		snap.Multiply = vault.Some(depositUSD.Div(net))
	}

	if st.opened != nil {
		locked := st.urn.Collateral
		snap.Vault = &vault.VaultPosition{
			Token:               m.Token,
			LockedCollateral:    locked,
			LockedCollateralUSD: locked.Mul(m.PriceInfo.CurrentCollateralPrice),
			Debt:                st.urn.Debt(m.IlkData.Rate()),
		}
		snap.LiquidationPrice = f.afterLiquidationPrice
		snap.NetValueUSD = snap.Vault.LockedCollateralUSD.Sub(snap.Vault.Debt)
		snap.CurrentPnL = decimal.Zero
		if !depositUSD.IsZero() {
			snap.CurrentPnL = snap.NetValueUSD.Sub(net).Div(depositUSD)
		}
	}

	stage := st.stage
	if snap.CanProgress {
		snap.Progress = vault.Available(func() { s.progressFrom(stage) })
	}
	if snap.CanRegress {
		snap.Regress = vault.Available(func() { s.regressFrom(stage) })
	}
	if stage == vault.StageProxyWaitingForConfirmation {
		snap.CreateProxy = vault.Available(func() { s.createProxyFrom(stage) })
	}
	return snap
}
