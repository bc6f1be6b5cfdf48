package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/vault"
)

// ---------------------------------------------------------------------------
// Panels
// ---------------------------------------------------------------------------

// Panel is the default panel: rounded border in BorderNormal.
var Panel = lipgloss.NewStyle().
	Background(BgPanel).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// PanelFocused is Panel with the cyan focus border.
var PanelFocused = Panel.BorderForeground(BorderFocused)

// Card is a compact surface for one vault figure.
var Card = lipgloss.NewStyle().
	Background(BgSurface).
	Border(lipgloss.NormalBorder()).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// Modal frames explainer and confirmation overlays.
var Modal = lipgloss.NewStyle().
	Background(BgPanel).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(AccentSecondary).
	Padding(1, 2)

// ---------------------------------------------------------------------------
// Badges and pills
// ---------------------------------------------------------------------------

// Badge returns an inline colored badge such as "● PROXY".
func Badge(text string, color lipgloss.Color) string {
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	return dot + " " + lipgloss.NewStyle().Foreground(color).Bold(true).Render(text)
}

// Pill renders text on the pill background of the given colors.
func Pill(text string, c vault.PillColors) string {
	return lipgloss.NewStyle().
		Background(Token(c.Bg)).
		Foreground(OnStatus).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

// Risk renders text in the color of a collateralization risk class.
func Risk(text string, c vault.RiskColor) string {
	return lipgloss.NewStyle().Foreground(Token(c.String())).Bold(true).Render(text)
}

// Change renders text in the color of a price change direction.
func Change(text string, c vault.ChangeColor) string {
	return lipgloss.NewStyle().Foreground(Token(c.String())).Render(text)
}

// ---------------------------------------------------------------------------
// Buttons
// ---------------------------------------------------------------------------

var (
	buttonPrimary = lipgloss.NewStyle().
			Background(AccentPrimary).
			Foreground(BgDeep).
			Bold(true).
			Padding(0, 2)

	buttonDisabled = lipgloss.NewStyle().
			Background(BgSurface).
			Foreground(TextMuted).
			Padding(0, 2)

	buttonSecondary = lipgloss.NewStyle().
			Foreground(TextSecondary).
			Underline(true)
)

// PrimaryButton renders the main wizard action.
func PrimaryButton(text string, enabled bool) string {
	if !enabled {
		return buttonDisabled.Render(text)
	}
	return buttonPrimary.Render(text)
}

// SecondaryButton renders the regress link.
func SecondaryButton(text string) string {
	return buttonSecondary.Render(text)
}

// ---------------------------------------------------------------------------
// Typography
// ---------------------------------------------------------------------------

// Title is bold AccentPrimary text for section headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Subtitle is regular TextSecondary text for secondary headings.
var Subtitle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// Label is TextMuted text for field labels.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for figures.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// ErrorText is used for validation messages under the inputs.
var ErrorText = lipgloss.NewStyle().
	Foreground(StatusError)

// Divider returns a horizontal rule of the given width.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(strings.Repeat("─", width))
}
