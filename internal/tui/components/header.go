package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// Logo is the compact wordmark shown in the header.
const Logo = "◆ vaultdesk"

// Header renders the app header bar: ilk, price with its recent history
// and the proxy in use.
type Header struct {
	Ilk     string
	Price   string
	Next    string // empty for static prices
	Change  vault.ChangeColor
	History []float64
	Proxy   string // empty when the owner has no proxy
	Width   int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render(Logo)
	sep := styles.Dim("  │  ")

	parts := []string{
		logo,
		styles.Label.Render("Ilk ") + lipgloss.NewStyle().Foreground(styles.AccentGold).Bold(true).Render(strings.ToUpper(h.Ilk)),
		styles.Label.Render("Price ") + styles.Value.Render(h.Price),
	}
	if h.Next != "" {
		parts[len(parts)-1] += " " + styles.Change("→ "+h.Next, h.Change)
	}
	if spark := styles.Sparkline(h.History, 16); spark != "" {
		parts = append(parts, spark)
	}

	proxy := styles.Red("none")
	if h.Proxy != "" {
		proxy = styles.Green(styles.TruncateMiddle(h.Proxy, 13))
	}
	parts = append(parts, styles.Label.Render("Proxy ")+proxy)

	return lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}
