package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// ConfirmDialog is a modal yes/no question.
type ConfirmDialog struct {
	Title     string
	Message   string
	Confirmed bool
	Done      bool
	yes       bool
}

// NewConfirmDialog creates a dialog with "No" selected.
func NewConfirmDialog(title, message string) ConfirmDialog {
	return ConfirmDialog{Title: title, Message: message}
}

// Update handles keyboard input. The dialog is Done after y, n, esc or enter.
func (d ConfirmDialog) Update(msg tea.Msg) (ConfirmDialog, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch key.String() {
	case "y", "Y":
		d.Confirmed, d.Done = true, true
	case "n", "N", "esc":
		d.Confirmed, d.Done = false, true
	case "enter":
		d.Confirmed, d.Done = d.yes, true
	case "left", "h":
		d.yes = true
	case "right", "l":
		d.yes = false
	case "tab", "shift+tab":
		d.yes = !d.yes
	}
	return d, nil
}

// View returns the styled dialog.
func (d ConfirmDialog) View() string {
	selected := lipgloss.NewStyle().
		Background(styles.AccentPrimary).
		Foreground(styles.BgDeep).
		Bold(true).
		Padding(0, 1)
	unselected := lipgloss.NewStyle().
		Background(styles.BgSurface).
		Foreground(styles.TextSecondary).
		Padding(0, 1)

	yes, no := unselected.Render("Yes"), selected.Render("No")
	if d.yes {
		yes, no = selected.Render("Yes"), unselected.Render("No")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render(d.Title),
		"",
		styles.Subtitle.Render(d.Message),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, yes, "  ", no),
		"",
		styles.Dim("y/n or ←→ + enter"),
	)

	return styles.Modal.Width(48).Align(lipgloss.Center).Render(content)
}
