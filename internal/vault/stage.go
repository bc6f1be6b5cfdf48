package vault

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Stage enumeration
// ---------------------------------------------------------------------------

// Stage is the position of an open-vault session in the wizard pipeline.
// Stages are declared in pipeline order.
type Stage int

const (
	StageEditing Stage = iota
	StageEditingWaitingToContinue

	StageProxyWaitingForConfirmation
	StageProxyWaitingForApproval
	StageProxyInProgress
	StageProxyFailure
	StageProxySuccess

	StageAllowanceWaitingForConfirmation
	StageAllowanceWaitingForApproval
	StageAllowanceInProgress
	StageAllowanceFailure
	StageAllowanceSuccess

	StageOpenWaitingForConfirmation
	StageOpenWaitingForApproval
	StageOpenInProgress
	StageOpenFailure
	StageOpenSuccess

	stageCount // sentinel, keep last
)

var stageNames = [stageCount]string{
	StageEditing:                         "editing",
	StageEditingWaitingToContinue:        "editingWaitingToContinue",
	StageProxyWaitingForConfirmation:     "proxyWaitingForConfirmation",
	StageProxyWaitingForApproval:         "proxyWaitingForApproval",
	StageProxyInProgress:                 "proxyInProgress",
	StageProxyFailure:                    "proxyFailure",
	StageProxySuccess:                    "proxySuccess",
	StageAllowanceWaitingForConfirmation: "allowanceWaitingForConfirmation",
	StageAllowanceWaitingForApproval:     "allowanceWaitingForApproval",
	StageAllowanceInProgress:             "allowanceInProgress",
	StageAllowanceFailure:                "allowanceFailure",
	StageAllowanceSuccess:                "allowanceSuccess",
	StageOpenWaitingForConfirmation:      "openWaitingForConfirmation",
	StageOpenWaitingForApproval:          "openWaitingForApproval",
	StageOpenInProgress:                  "openInProgress",
	StageOpenFailure:                     "openFailure",
	StageOpenSuccess:                     "openSuccess",
}

// legacyStageNames maps the older tag vocabulary still emitted by some
// producers onto the canonical stages.
var legacyStageNames = map[string]Stage{
	"proxyFiasco":                       StageProxyFailure,
	"allowanceFiasco":                   StageAllowanceFailure,
	"transactionWaitingForConfirmation": StageOpenWaitingForConfirmation,
	"transactionWaitingForApproval":     StageOpenWaitingForApproval,
	"transactionInProgress":             StageOpenInProgress,
	"transactionFiasco":                 StageOpenFailure,
	"transactionFailure":                StageOpenFailure,
	"transactionSuccess":                StageOpenSuccess,
}

var stageByName = func() map[string]Stage {
	m := make(map[string]Stage, stageCount)
	for s, name := range stageNames {
		m[name] = Stage(s)
	}
	return m
}()

// AllStages returns every stage in pipeline order.
func AllStages() []Stage {
	out := make([]Stage, 0, stageCount)
	for s := StageEditing; s < stageCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is inside the enumeration.
func (s Stage) Valid() bool {
	return s >= StageEditing && s < stageCount
}

// String returns the canonical tag, or "Stage(n)" for values outside the
// enumeration.
func (s Stage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage resolves a stage tag. Legacy tags are accepted and reported
// through the legacy return value so callers can surface the drift.
func ParseStage(tag string) (stage Stage, legacy bool, err error) {
	if s, ok := stageByName[tag]; ok {
		return s, false, nil
	}
	if s, ok := legacyStageNames[tag]; ok {
		return s, true, nil
	}
	return 0, false, fmt.Errorf("unknown vault stage %q", tag)
}

// MarshalText encodes the canonical tag.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &UnreachableStageError{Stage: s}
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText accepts canonical and legacy tags.
func (s *Stage) UnmarshalText(text []byte) error {
	parsed, _, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ---------------------------------------------------------------------------
// Phases and steps
// ---------------------------------------------------------------------------

// Phase is one of the four strictly ordered parts of the pipeline.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseProxy
	PhaseAllowance
	PhaseOpen
)

// String returns a short display name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "Editing"
	case PhaseProxy:
		return "Proxy"
	case PhaseAllowance:
		return "Allowance"
	case PhaseOpen:
		return "Open"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// AllPhases returns the phases in pipeline order.
func AllPhases() []Phase {
	return []Phase{PhaseEditing, PhaseProxy, PhaseAllowance, PhaseOpen}
}

// Step is the sub-state of a stage inside its phase.
type Step int

const (
	StepEditing Step = iota
	StepConfirmation
	StepApproval
	StepInProgress
	StepFailure
	StepSuccess
)

// String returns the lowercase step name.
func (st Step) String() string {
	switch st {
	case StepEditing:
		return "editing"
	case StepConfirmation:
		return "confirmation"
	case StepApproval:
		return "approval"
	case StepInProgress:
		return "in progress"
	case StepFailure:
		return "failure"
	case StepSuccess:
		return "success"
	default:
		return fmt.Sprintf("Step(%d)", int(st))
	}
}

// Phase returns the phase a stage belongs to. Stages outside the
// enumeration report PhaseEditing; callers that care check Valid first.
func (s Stage) Phase() Phase {
	switch {
	case s >= StageProxyWaitingForConfirmation && s <= StageProxySuccess:
		return PhaseProxy
	case s >= StageAllowanceWaitingForConfirmation && s <= StageAllowanceSuccess:
		return PhaseAllowance
	case s >= StageOpenWaitingForConfirmation && s <= StageOpenSuccess:
		return PhaseOpen
	default:
		return PhaseEditing
	}
}

// Step returns the sub-state of s within its phase.
func (s Stage) Step() Step {
	switch s {
	case StageProxyWaitingForConfirmation, StageAllowanceWaitingForConfirmation, StageOpenWaitingForConfirmation:
		return StepConfirmation
	case StageProxyWaitingForApproval, StageAllowanceWaitingForApproval, StageOpenWaitingForApproval:
		return StepApproval
	case StageProxyInProgress, StageAllowanceInProgress, StageOpenInProgress:
		return StepInProgress
	case StageProxyFailure, StageAllowanceFailure, StageOpenFailure:
		return StepFailure
	case StageProxySuccess, StageAllowanceSuccess, StageOpenSuccess:
		return StepSuccess
	default:
		return StepEditing
	}
}

// IsFailure reports whether s is the failure sub-state of any phase.
func (s Stage) IsFailure() bool {
	return s.Step() == StepFailure
}

// IsPending reports whether s waits on the wallet or the chain.
func (s Stage) IsPending() bool {
	st := s.Step()
	return st == StepApproval || st == StepInProgress
}
