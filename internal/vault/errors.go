package vault

import (
	"errors"
	"fmt"
)

// UnreachableStageError reports a stage value outside the enumeration. It
// means the snapshot producer and this package disagree on the stage set,
// so the resolver refuses to guess.
type UnreachableStageError struct {
	Stage Stage
}

func (e *UnreachableStageError) Error() string {
	return fmt.Sprintf("unreachable vault stage: %d", int(e.Stage))
}

var (
	// ErrProgressDisabled is returned when the primary action is activated
	// while the snapshot does not allow progressing.
	ErrProgressDisabled = errors.New("vault: progress is disabled for this snapshot")
	// ErrRegressHidden is returned when the secondary action is activated
	// while the snapshot does not allow regressing.
	ErrRegressHidden = errors.New("vault: regress is not offered for this snapshot")
	// ErrActionUnavailable is returned when the requested action handle is
	// not provided by the pipeline for the current stage.
	ErrActionUnavailable = errors.New("vault: action unavailable")
	// ErrMissingVaultID is returned when navigation to the new vault is
	// required but the snapshot carries no vault id.
	ErrMissingVaultID = errors.New("vault: snapshot has no vault id")
)
