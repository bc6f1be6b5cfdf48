package styles

import "github.com/charmbracelet/lipgloss"

// Night palette: deep backgrounds, cyan accent, traffic-light status colors.

var (
	// Backgrounds
	BgDeep    = lipgloss.Color("#0a0e14")
	BgPanel   = lipgloss.Color("#11151c")
	BgSurface = lipgloss.Color("#1a1f2e")

	// Accents
	AccentPrimary   = lipgloss.Color("#4fc1ff")
	AccentSecondary = lipgloss.Color("#39c5bb")
	AccentGold      = lipgloss.Color("#f5a623")

	// Status
	StatusOK    = lipgloss.Color("#22c55e")
	StatusWarn  = lipgloss.Color("#f59e0b")
	StatusError = lipgloss.Color("#ef4444")

	// Status text drawn on top of a status background
	OnStatus = lipgloss.Color("#0a0e14")

	// Text
	TextPrimary   = lipgloss.Color("#e2e8f0")
	TextSecondary = lipgloss.Color("#94a3b8")
	TextMuted     = lipgloss.Color("#64748b")

	// Borders
	BorderNormal  = lipgloss.Color("#2d3748")
	BorderFocused = lipgloss.Color("#4fc1ff")
)

// themeTokens maps the theme token names used by the vault resolvers to
// terminal colors. "on*" tokens are foregrounds, bare status names are
// backgrounds.
var themeTokens = map[string]lipgloss.Color{
	"primary":    AccentPrimary,
	"onError":    StatusError,
	"onWarning":  StatusWarn,
	"onSuccess":  StatusOK,
	"error":      StatusError,
	"warning":    StatusWarn,
	"success":    StatusOK,
	"text.muted": TextMuted,
}

// Token resolves a theme token name. Unknown names fall back to TextPrimary.
func Token(name string) lipgloss.Color {
	if c, ok := themeTokens[name]; ok {
		return c
	}
	return TextPrimary
}
