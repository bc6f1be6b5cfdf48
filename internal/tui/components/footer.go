package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string
	Desc string
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	parts := make([]string, 0, len(f.Hints))
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		Padding(0, 1).
		Render(strings.Join(parts, descStyle.Render(" • ")))
}

// InputFooter is shown while an amount field has focus.
func InputFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "tab", Desc: "next field"},
			{Key: "enter", Desc: "done"},
			{Key: "esc", Desc: "leave field"},
		},
		Width: width,
	}
}

// WizardFooter is shown while no field has focus. secondary is the regress
// caption, empty when regress is hidden.
func WizardFooter(width int, primary, secondary string, proxy bool) Footer {
	hints := []KeyHint{{Key: "enter", Desc: strings.ToLower(primary)}}
	if secondary != "" {
		hints = append(hints, KeyHint{Key: "backspace", Desc: strings.ToLower(secondary)})
	}
	if proxy {
		hints = append(hints, KeyHint{Key: "p", Desc: "create proxy"})
	}
	hints = append(hints,
		KeyHint{Key: "tab", Desc: "edit"},
		KeyHint{Key: "v", Desc: "view"},
		KeyHint{Key: "?", Desc: "explain"},
		KeyHint{Key: "s", Desc: "save"},
		KeyHint{Key: "q", Desc: "quit"},
	)
	return Footer{Hints: hints, Width: width}
}

// DetailsFooter is shown on the vault details tab.
func DetailsFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "↑↓", Desc: "select card"},
			{Key: "?", Desc: "explain"},
			{Key: "b", Desc: "buying power"},
			{Key: "v", Desc: "view"},
			{Key: "q", Desc: "quit"},
		},
		Width: width,
	}
}
