package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStagesHaveNames(t *testing.T) {
	stages := AllStages()
	require.Len(t, stages, 17)
	seen := map[string]bool{}
	for _, s := range stages {
		assert.True(t, s.Valid())
		name := s.String()
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		parsed, legacy, err := ParseStage(name)
		require.NoError(t, err)
		assert.False(t, legacy)
		assert.Equal(t, s, parsed)
	}
}

func TestParseStageLegacyAliases(t *testing.T) {
	tests := map[string]Stage{
		"proxyFiasco":                       StageProxyFailure,
		"allowanceFiasco":                   StageAllowanceFailure,
		"transactionWaitingForConfirmation": StageOpenWaitingForConfirmation,
		"transactionWaitingForApproval":     StageOpenWaitingForApproval,
		"transactionInProgress":             StageOpenInProgress,
		"transactionFiasco":                 StageOpenFailure,
		"transactionSuccess":                StageOpenSuccess,
	}
	for tag, want := range tests {
		t.Run(tag, func(t *testing.T) {
			got, legacy, err := ParseStage(tag)
			require.NoError(t, err)
			assert.True(t, legacy)
			assert.Equal(t, want, got)
		})
	}

	_, _, err := ParseStage("launching")
	assert.Error(t, err)
}

func TestStageJSON(t *testing.T) {
	b, err := json.Marshal(StageAllowanceFailure)
	require.NoError(t, err)
	assert.Equal(t, `"allowanceFailure"`, string(b))

	var s Stage
	require.NoError(t, json.Unmarshal([]byte(`"transactionFiasco"`), &s))
	assert.Equal(t, StageOpenFailure, s)

	_, err = json.Marshal(Stage(42))
	assert.Error(t, err)
}

func TestStageOutsideDomain(t *testing.T) {
	s := Stage(-1)
	assert.False(t, s.Valid())
	assert.Equal(t, "Stage(-1)", s.String())
	assert.False(t, stageCount.Valid())
}

func TestPhasesAndSteps(t *testing.T) {
	tests := []struct {
		stage Stage
		phase Phase
		step  Step
	}{
		{StageEditing, PhaseEditing, StepEditing},
		{StageEditingWaitingToContinue, PhaseEditing, StepEditing},
		{StageProxyWaitingForConfirmation, PhaseProxy, StepConfirmation},
		{StageProxyFailure, PhaseProxy, StepFailure},
		{StageAllowanceInProgress, PhaseAllowance, StepInProgress},
		{StageAllowanceSuccess, PhaseAllowance, StepSuccess},
		{StageOpenWaitingForApproval, PhaseOpen, StepApproval},
		{StageOpenSuccess, PhaseOpen, StepSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			assert.Equal(t, tt.phase, tt.stage.Phase())
			assert.Equal(t, tt.step, tt.stage.Step())
		})
	}

	assert.True(t, StageOpenFailure.IsFailure())
	assert.False(t, StageOpenSuccess.IsFailure())
	assert.True(t, StageProxyWaitingForApproval.IsPending())
	assert.False(t, StageProxyWaitingForConfirmation.IsPending())
}

func TestPhasesAreOrdered(t *testing.T) {
	prev := PhaseEditing
	for _, s := range AllStages() {
		assert.GreaterOrEqual(t, int(s.Phase()), int(prev), "stage %s", s)
		prev = s.Phase()
	}
}

func TestPanelFor(t *testing.T) {
	tests := map[Stage]Panel{
		StageEditing:                         PanelEditing,
		StageEditingWaitingToContinue:        PanelEditing,
		StageProxyWaitingForConfirmation:     PanelProxy,
		StageProxyFailure:                    PanelProxy,
		StageProxySuccess:                    PanelNone,
		StageAllowanceWaitingForApproval:     PanelAllowance,
		StageAllowanceSuccess:                PanelNone,
		StageOpenWaitingForConfirmation:      PanelTransaction,
		StageOpenSuccess:                     PanelTransaction,
		Stage(99):                            PanelNone,
		StageAllowanceWaitingForConfirmation: PanelAllowance,
	}
	for stage, want := range tests {
		assert.Equal(t, want, PanelFor(stage), "stage %s", stage)
	}
}
