package vault

// Panel is the coarse sub-view shown under the wizard for a stage.
type Panel int

const (
	PanelNone Panel = iota
	PanelEditing
	PanelProxy
	PanelAllowance
	PanelTransaction
)

// String returns the panel name.
func (p Panel) String() string {
	switch p {
	case PanelEditing:
		return "editing"
	case PanelProxy:
		return "proxy"
	case PanelAllowance:
		return "allowance"
	case PanelTransaction:
		return "transaction"
	default:
		return "none"
	}
}

// PanelFor groups stages into panels. Stages without a panel, including
// values outside the enumeration, map to PanelNone.
func PanelFor(stage Stage) Panel {
	switch stage {
	case StageProxyWaitingForConfirmation,
		StageProxyWaitingForApproval,
		StageProxyInProgress,
		StageProxyFailure:
		return PanelProxy
	case StageAllowanceWaitingForConfirmation,
		StageAllowanceWaitingForApproval,
		StageAllowanceInProgress,
		StageAllowanceFailure:
		return PanelAllowance
	case StageEditingWaitingToContinue, StageEditing:
		return PanelEditing
	case StageOpenWaitingForConfirmation,
		StageOpenWaitingForApproval,
		StageOpenInProgress,
		StageOpenFailure,
		StageOpenSuccess:
		return PanelTransaction
	default:
		return PanelNone
	}
}
