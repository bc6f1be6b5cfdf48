package vault

// Action is a capability handed out by the snapshot producer. The zero
// value is Unavailable.
type Action struct {
	run func()
}

// Unavailable is the action value for handles the pipeline does not offer.
var Unavailable = Action{}

// Available wraps fn as an invocable action. A nil fn yields Unavailable.
func Available(fn func()) Action {
	return Action{run: fn}
}

// IsAvailable reports whether the action can be invoked.
func (a Action) IsAvailable() bool {
	return a.run != nil
}

// Invoke runs the action. It returns ErrActionUnavailable instead of
// running anything when the action is Unavailable.
func (a Action) Invoke() error {
	if a.run == nil {
		return ErrActionUnavailable
	}
	a.run()
	return nil
}
