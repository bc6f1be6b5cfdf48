package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// ProgressStep shows the wizard phases as a row of dots.
type ProgressStep struct {
	Steps   []string
	Current int
	Failed  bool // draw the current step as failed
	Done    bool // every step is complete
}

// Render returns the styled progress indicator. Completed steps are green,
// the current step is cyan (red when failed) and future steps are muted.
func (p ProgressStep) Render() string {
	if len(p.Steps) == 0 {
		return ""
	}

	parts := make([]string, 0, len(p.Steps))
	for i, label := range p.Steps {
		dot := "○"
		style := lipgloss.NewStyle().Foreground(styles.TextMuted)

		switch {
		case i < p.Current || p.Done:
			dot = "●"
			style = lipgloss.NewStyle().Foreground(styles.StatusOK)
		case i == p.Current && p.Failed:
			dot = "✗"
			style = lipgloss.NewStyle().Foreground(styles.StatusError).Bold(true)
		case i == p.Current:
			dot = "●"
			style = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
		}

		parts = append(parts, style.Render(dot+" "+label))
	}

	return strings.Join(parts, styles.Dim(" ── "))
}
