package vault

// Navigator moves the surrounding shell to another page.
type Navigator interface {
	GoToPath(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

// GoToPath calls f(path).
func (f NavigatorFunc) GoToPath(path string) { f(path) }

// VaultPath is the page of an opened vault.
func VaultPath(id string) string {
	return "/" + id
}

// ActivatePrimary forwards a primary-button press to the pipeline. On the
// final success stage it first asks nav to show the new vault.
func ActivatePrimary(s Snapshot, nav Navigator) error {
	if !s.CanProgress {
		return ErrProgressDisabled
	}
	if !s.Progress.IsAvailable() {
		return ErrActionUnavailable
	}
	if s.Stage == StageOpenSuccess {
		if s.ID == "" {
			return ErrMissingVaultID
		}
		if nav != nil {
			nav.GoToPath(VaultPath(s.ID))
		}
	}
	return s.Progress.Invoke()
}

// ActivateSecondary forwards a regress-button press to the pipeline.
func ActivateSecondary(s Snapshot) error {
	if !s.CanRegress {
		return ErrRegressHidden
	}
	return s.Regress.Invoke()
}

// ActivateCreateProxy forwards the proxy panel's create button.
func ActivateCreateProxy(s Snapshot) error {
	if s.Stage != StageProxyWaitingForConfirmation {
		return ErrActionUnavailable
	}
	return s.CreateProxy.Invoke()
}
