package vault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimaryLabelTotal(t *testing.T) {
	for _, s := range AllStages() {
		l, err := PrimaryLabel(Snapshot{Stage: s, Token: "ETH", ID: "7"})
		require.NoError(t, err, "stage %s", s)
		assert.NotEmpty(t, l.Key)
		assert.NotEmpty(t, l.String())
	}
}

func TestPrimaryLabelUnreachable(t *testing.T) {
	for _, s := range []Stage{Stage(-1), stageCount, Stage(1000)} {
		_, err := PrimaryLabel(Snapshot{Stage: s})
		var unreachable *UnreachableStageError
		require.True(t, errors.As(err, &unreachable))
		assert.Equal(t, s, unreachable.Stage)
	}

	assert.Panics(t, func() { MustPrimaryLabel(Snapshot{Stage: Stage(77)}) })
}

func TestPrimaryLabelEditing(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want LabelKey
	}{
		{
			"empty inputs win over everything",
			Snapshot{InputAmountsEmpty: true, InsufficientAllowance: true},
			LabelEnterAmount,
		},
		{
			"empty inputs with proxy",
			Snapshot{InputAmountsEmpty: true, ProxyAddress: "0xabc", InsufficientAllowance: true},
			LabelEnterAmount,
		},
		{"no proxy", Snapshot{InsufficientAllowance: true}, LabelSetupProxy},
		{"insufficient allowance", Snapshot{ProxyAddress: "0xabc", InsufficientAllowance: true}, LabelSetTokenAllowance},
		{"ready", Snapshot{ProxyAddress: "0xabc"}, LabelConfirm},
	}
	for _, tt := range tests {
		for _, stage := range []Stage{StageEditing, StageEditingWaitingToContinue} {
			t.Run(tt.name+"/"+stage.String(), func(t *testing.T) {
				tt.snap.Stage = stage
				l, err := PrimaryLabel(tt.snap)
				require.NoError(t, err)
				assert.Equal(t, tt.want, l.Key)
			})
		}
	}
}

func TestPrimaryLabelStages(t *testing.T) {
	tests := []struct {
		snap Snapshot
		want string
	}{
		{Snapshot{Stage: StageProxyWaitingForConfirmation}, "Create Proxy"},
		{Snapshot{Stage: StageProxyWaitingForApproval}, "Creating Proxy"},
		{Snapshot{Stage: StageProxyInProgress}, "Creating Proxy"},
		{Snapshot{Stage: StageProxyFailure}, "Retry Create Proxy"},
		{Snapshot{Stage: StageProxySuccess, Token: "WBTC", InsufficientAllowance: true}, "Set WBTC allowance"},
		{Snapshot{Stage: StageProxySuccess}, "Continue"},
		{Snapshot{Stage: StageAllowanceWaitingForConfirmation, CustomAllowanceAmountEmpty: true}, "Enter allowance amount"},
		{Snapshot{Stage: StageAllowanceWaitingForConfirmation, Token: "USDC"}, "Set USDC allowance"},
		{Snapshot{Stage: StageAllowanceWaitingForApproval}, "Approving allowance"},
		{Snapshot{Stage: StageAllowanceInProgress}, "Approving allowance"},
		{Snapshot{Stage: StageAllowanceFailure}, "Retry allowance approval"},
		{Snapshot{Stage: StageAllowanceSuccess}, "Continue"},
		{Snapshot{Stage: StageOpenWaitingForConfirmation}, "Create Vault"},
		{Snapshot{Stage: StageOpenWaitingForApproval}, "Create Vault"},
		{Snapshot{Stage: StageOpenInProgress}, "Creating Vault"},
		{Snapshot{Stage: StageOpenFailure}, "Retry"},
		{Snapshot{Stage: StageOpenSuccess, ID: "42"}, "Go to Vault #42"},
	}
	for _, tt := range tests {
		t.Run(tt.snap.Stage.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MustPrimaryLabel(tt.snap).String())
		})
	}
}

func TestSecondaryLabel(t *testing.T) {
	for _, s := range AllStages() {
		l := SecondaryLabel(Snapshot{Stage: s, Token: "ETH"})
		if s == StageAllowanceFailure {
			assert.Equal(t, LabelEditTokenAllowance, l.Key)
			assert.Equal(t, "Edit ETH allowance", l.String())
			continue
		}
		assert.Equal(t, LabelEditVaultDetails, l.Key, "stage %s", s)
	}
}

func TestResolveButtons(t *testing.T) {
	b, err := ResolveButtons(Snapshot{
		Stage:          StageOpenInProgress,
		IsLoadingStage: true,
	})
	require.NoError(t, err)
	assert.Equal(t, LabelCreatingVault, b.Primary.Label.Key)
	assert.True(t, b.Primary.Visible)
	assert.False(t, b.Primary.Enabled)
	assert.True(t, b.Primary.Busy)
	assert.False(t, b.Secondary.Visible)

	b, err = ResolveButtons(Snapshot{
		Stage:       StageAllowanceFailure,
		Token:       "WBTC",
		CanProgress: true,
		CanRegress:  true,
	})
	require.NoError(t, err)
	assert.True(t, b.Primary.Enabled)
	assert.False(t, b.Primary.Busy)
	assert.True(t, b.Secondary.Visible)
	assert.Equal(t, "Edit WBTC allowance", b.Secondary.Label.String())

	_, err = ResolveButtons(Snapshot{Stage: Stage(50)})
	assert.Error(t, err)
}

func TestLabelUnknownKeyFallsBack(t *testing.T) {
	assert.Equal(t, "mystery", Label{Key: "mystery"}.String())
}
