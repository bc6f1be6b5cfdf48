package vault

import (
	"strings"
)

// LabelKey identifies a button caption independently of its rendered text.
type LabelKey string

const (
	LabelEnterAmount            LabelKey = "enter-an-amount"
	LabelSetupProxy             LabelKey = "setup-proxy"
	LabelSetTokenAllowance      LabelKey = "set-token-allowance"
	LabelConfirm                LabelKey = "confirm"
	LabelCreateProxy            LabelKey = "create-proxy-btn"
	LabelCreatingProxy          LabelKey = "creating-proxy"
	LabelRetryCreateProxy       LabelKey = "retry-create-proxy"
	LabelContinue               LabelKey = "continue"
	LabelEnterAllowanceAmount   LabelKey = "enter-allowance-amount"
	LabelApprovingAllowance     LabelKey = "approving-allowance"
	LabelRetryAllowanceApproval LabelKey = "retry-allowance-approval"
	LabelRetry                  LabelKey = "retry"
	LabelCreatingVault          LabelKey = "creating-vault"
	LabelGoToVault              LabelKey = "go-to-vault"
	LabelCreateVault            LabelKey = "create-vault"
	LabelEditTokenAllowance     LabelKey = "edit-token-allowance"
	LabelEditVaultDetails       LabelKey = "edit-vault-details"
)

// english is the built-in caption catalog. {token} and {id} are replaced
// with the label arguments.
var english = map[LabelKey]string{
	LabelEnterAmount:            "Enter an amount",
	LabelSetupProxy:             "Setup Proxy",
	LabelSetTokenAllowance:      "Set {token} allowance",
	LabelConfirm:                "Confirm",
	LabelCreateProxy:            "Create Proxy",
	LabelCreatingProxy:          "Creating Proxy",
	LabelRetryCreateProxy:       "Retry Create Proxy",
	LabelContinue:               "Continue",
	LabelEnterAllowanceAmount:   "Enter allowance amount",
	LabelApprovingAllowance:     "Approving allowance",
	LabelRetryAllowanceApproval: "Retry allowance approval",
	LabelRetry:                  "Retry",
	LabelCreatingVault:          "Creating Vault",
	LabelGoToVault:              "Go to Vault #{id}",
	LabelCreateVault:            "Create Vault",
	LabelEditTokenAllowance:     "Edit {token} allowance",
	LabelEditVaultDetails:       "Edit Vault details",
}

// Label is a resolved button caption.
type Label struct {
	Key     LabelKey
	Token   string
	VaultID string
}

// String renders the English caption.
func (l Label) String() string {
	text, ok := english[l.Key]
	if !ok {
		return string(l.Key)
	}
	return strings.NewReplacer("{token}", l.Token, "{id}", l.VaultID).Replace(text)
}

// PrimaryLabel resolves the primary button caption for a snapshot. It is a
// total function over the stage enumeration and returns an
// *UnreachableStageError for anything else.
func PrimaryLabel(s Snapshot) (Label, error) {
	l := Label{Token: s.Token}

	switch s.Stage {
	case StageEditing, StageEditingWaitingToContinue:
		switch {
		case s.InputAmountsEmpty:
			l.Key = LabelEnterAmount
		case !s.HasProxy():
			l.Key = LabelSetupProxy
		case s.InsufficientAllowance:
			l.Key = LabelSetTokenAllowance
		default:
			l.Key = LabelConfirm
		}

	case StageProxyWaitingForConfirmation:
		l.Key = LabelCreateProxy
	case StageProxyWaitingForApproval, StageProxyInProgress:
		l.Key = LabelCreatingProxy
	case StageProxyFailure:
		l.Key = LabelRetryCreateProxy
	case StageProxySuccess:
		if s.InsufficientAllowance {
			l.Key = LabelSetTokenAllowance
		} else {
			l.Key = LabelContinue
		}

	case StageAllowanceWaitingForConfirmation:
		if s.CustomAllowanceAmountEmpty {
			l.Key = LabelEnterAllowanceAmount
		} else {
			l.Key = LabelSetTokenAllowance
		}
	case StageAllowanceWaitingForApproval, StageAllowanceInProgress:
		l.Key = LabelApprovingAllowance
	case StageAllowanceFailure:
		l.Key = LabelRetryAllowanceApproval
	case StageAllowanceSuccess:
		l.Key = LabelContinue

	case StageOpenFailure:
		l.Key = LabelRetry
	case StageOpenInProgress:
		l.Key = LabelCreatingVault
	case StageOpenSuccess:
		l.Key = LabelGoToVault
		l.VaultID = s.ID
	case StageOpenWaitingForApproval, StageOpenWaitingForConfirmation:
		l.Key = LabelCreateVault

	default:
		return Label{}, &UnreachableStageError{Stage: s.Stage}
	}

	return l, nil
}

// MustPrimaryLabel is PrimaryLabel for callers that treat an unknown stage
// as a programming error.
func MustPrimaryLabel(s Snapshot) Label {
	l, err := PrimaryLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// SecondaryLabel resolves the regress button caption.
func SecondaryLabel(s Snapshot) Label {
	if s.Stage == StageAllowanceFailure {
		return Label{Key: LabelEditTokenAllowance, Token: s.Token}
	}
	return Label{Key: LabelEditVaultDetails, Token: s.Token}
}

// Button is the display state of one action button.
type Button struct {
	Label   Label
	Visible bool
	Enabled bool
	Busy    bool // show a busy indicator next to the label
}

// Buttons is the resolved action area of the wizard.
type Buttons struct {
	Primary   Button
	Secondary Button
}

// ResolveButtons computes both action buttons for a snapshot.
func ResolveButtons(s Snapshot) (Buttons, error) {
	primary, err := PrimaryLabel(s)
	if err != nil {
		return Buttons{}, err
	}
	return Buttons{
		Primary: Button{
			Label:   primary,
			Visible: true,
			Enabled: s.CanProgress,
			Busy:    s.IsLoadingStage,
		},
		Secondary: Button{
			Label:   SecondaryLabel(s),
			Visible: s.CanRegress,
			Enabled: s.CanRegress,
		},
	}, nil
}
