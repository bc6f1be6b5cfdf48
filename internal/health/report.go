package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

var categoryTitles = map[Category]string{
	CategoryConfig:  "Configuration",
	CategoryMarket:  "Market Data",
	CategoryRuntime: "Runtime",
}

var (
	statusColor = map[Status]lipgloss.Color{
		StatusPass: styles.StatusOK,
		StatusWarn: styles.StatusWarn,
		StatusFail: styles.StatusError,
	}
	statusGlyph = map[Status]string{
		StatusPass: "✓",
		StatusWarn: "!",
		StatusFail: "✗",
	}
	verdict = map[Status]string{
		StatusPass: "HEALTHY",
		StatusWarn: "DEGRADED",
		StatusFail: "UNHEALTHY",
	}
)

// FormatReport renders r for `vaultdesk doctor`, one block per category.
func FormatReport(r *Report) string {
	var b strings.Builder
	b.WriteString("\n  " + styles.Title.Render("vaultdesk doctor") + "\n")
	b.WriteString("  " + styles.Divider(60) + "\n")

	name := lipgloss.NewStyle().Width(16).Foreground(styles.TextPrimary)
	msg := lipgloss.NewStyle().Width(40).Foreground(styles.TextSecondary)
	dur := lipgloss.NewStyle().Width(7).Align(lipgloss.Right).Foreground(styles.TextMuted)
	heading := lipgloss.NewStyle().Foreground(styles.AccentSecondary).Bold(true)

	for _, cat := range Categories {
		first := true
		for _, res := range r.Results {
			if res.Category != cat {
				continue
			}
			if first {
				b.WriteString("\n  " + heading.Render(categoryTitles[cat]) + "\n")
				first = false
			}
			glyph := lipgloss.NewStyle().Foreground(statusColor[res.Status]).Bold(true).Render(statusGlyph[res.Status])
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				glyph,
				name.Render(res.Name),
				msg.Render(styles.TruncateMiddle(res.Message, 38)),
				dur.Render(shortDuration(res.Duration)),
			)
		}
	}

	b.WriteString("\n  " + styles.Divider(60) + "\n")
	parts := []string{fmt.Sprintf("%d/%d passed", r.Passed, r.Total)}
	if r.Warned > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", r.Warned))
	}
	if r.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", r.Failed))
	}
	worst := r.Worst()
	fmt.Fprintf(&b, "  %s  %s\n", styles.Dim(strings.Join(parts, ", ")), styles.Badge(verdict[worst], statusColor[worst]))
	b.WriteString(styles.Dim("  completed in "+shortDuration(r.Duration)) + "\n")
	return b.String()
}

func shortDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
