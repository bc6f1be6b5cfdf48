package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dallionking/vaultdesk/internal/tui/models"
)

// RunOpenVault launches the open-vault wizard and blocks until the user
// quits or ctx is cancelled. It returns the vault page the user went to,
// or "" when the wizard was left before opening a vault.
func RunOpenVault(ctx context.Context, opts models.OpenVaultOptions) (string, error) {
	p := tea.NewProgram(models.NewOpenVaultModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("open vault wizard failed: %w", err)
	}

	m, ok := final.(models.OpenVaultModel)
	if !ok {
		return "", nil
	}
	return m.Navigated(), nil
}
