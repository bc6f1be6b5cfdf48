package session

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/Dallionking/vaultdesk/internal/vault"
)

func hasProxy(st *state) bool {
	return st.proxy != (common.Address{})
}

// pending reports a transaction awaiting approval or confirmation.
func pending(st *state) bool {
	return st.stage.IsPending()
}

// nextSetupStage picks the stage after editing or a finished setup phase.
func nextSetupStage(st *state) vault.Stage {
	f := compute(st.market, st.in, st.allowance)
	switch {
	case !hasProxy(st):
		return vault.StageProxyWaitingForConfirmation
	case f.insufficientAllowance:
		return vault.StageAllowanceWaitingForConfirmation
	default:
		return vault.StageOpenWaitingForConfirmation
	}
}

func enter(st *state, stage vault.Stage) {
	st.stage = stage
	if stage == vault.StageAllowanceWaitingForConfirmation && !st.in.customAllowance.Valid {
		// Prefill with the deposit amount.
		st.in.customAllowance = st.in.deposit
	}
}

func submit(st *state, kind TxKind) {
	req := TxRequest{Kind: kind, Owner: st.owner}
	switch kind {
	case TxAllowance:
		req.Amount = positive(st.in.customAllowance)
		st.stage = vault.StageAllowanceWaitingForApproval
	case TxOpen:
		req.Amount = positive(st.in.deposit)
		req.Ilk = st.market.Ilk
		req.Debt = positive(st.in.generate)
		req.Rate = st.market.IlkData.Rate()
		st.stage = vault.StageOpenWaitingForApproval
	default:
		st.stage = vault.StageProxyWaitingForApproval
	}
	st.submit(req)
}

func inProgressStage(kind TxKind) vault.Stage {
	switch kind {
	case TxProxy:
		return vault.StageProxyInProgress
	case TxAllowance:
		return vault.StageAllowanceInProgress
	default:
		return vault.StageOpenInProgress
	}
}

// canProgress reports whether the primary action is offered.
func canProgress(st *state, f figures) bool {
	if pending(st) {
		return false
	}
	switch st.stage {
	case vault.StageEditing, vault.StageEditingWaitingToContinue:
		return !f.inputAmountsEmpty && len(f.errors) == 0
	case vault.StageAllowanceWaitingForConfirmation, vault.StageAllowanceFailure:
		return st.in.customAllowance.Valid && st.in.customAllowance.Decimal.IsPositive()
	default:
		return true
	}
}

// canRegress reports whether the secondary action is offered.
func canRegress(st *state) bool {
	if pending(st) {
		return false
	}
	switch st.stage.Step() {
	case vault.StepConfirmation, vault.StepFailure:
		return true
	default:
		return false
	}
}

func progress(st *state) {
	f := compute(st.market, st.in, st.allowance)
	if !canProgress(st, f) {
		return
	}

	switch st.stage {
	case vault.StageEditing, vault.StageEditingWaitingToContinue:
		enter(st, nextSetupStage(st))

	case vault.StageProxyWaitingForConfirmation, vault.StageProxyFailure:
		submit(st, TxProxy)
	case vault.StageProxySuccess:
		enter(st, nextSetupStage(st))

	case vault.StageAllowanceWaitingForConfirmation, vault.StageAllowanceFailure:
		submit(st, TxAllowance)
	case vault.StageAllowanceSuccess:
		enter(st, vault.StageOpenWaitingForConfirmation)

	case vault.StageOpenWaitingForConfirmation, vault.StageOpenFailure:
		submit(st, TxOpen)

	case vault.StageOpenSuccess:
		// Terminal. The shell navigates to the vault page.
	}
}

func regress(st *state) {
	if !canRegress(st) {
		return
	}
	if st.stage == vault.StageAllowanceFailure {
		st.stage = vault.StageAllowanceWaitingForConfirmation
		return
	}
	if st.setupDone {
		st.stage = vault.StageEditingWaitingToContinue
		return
	}
	st.stage = vault.StageEditing
}
