package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// TabBar draws numbered tabs with an optional status text on the right.
type TabBar struct {
	Tabs      []string
	ActiveTab int
	Status    string
	Width     int
}

// Render returns the tab row.
func (t TabBar) Render() string {
	if len(t.Tabs) == 0 {
		return ""
	}

	labels := make([]string, len(t.Tabs))
	for i, name := range t.Tabs {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if i == t.ActiveTab {
			labels[i] = lipgloss.NewStyle().Foreground(styles.BgDeep).Background(styles.AccentPrimary).Bold(true).Render(label)
		} else {
			labels[i] = lipgloss.NewStyle().Foreground(styles.TextSecondary).Background(styles.BgSurface).Render(label)
		}
	}
	left := strings.Join(labels, " ")

	if t.Status == "" || t.Width <= 0 {
		return left
	}
	right := styles.Dim(t.Status)
	gap := t.Width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
