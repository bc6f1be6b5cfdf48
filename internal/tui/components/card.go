package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// CardView draws one vault figure card with its optional after pill.
type CardView struct {
	Card     vault.Card
	Pill     vault.PillColors
	Selected bool
	Width    int
}

// Render returns the boxed card.
func (c CardView) Render() string {
	width := c.Width
	if width <= 0 {
		width = 30
	}

	value := styles.Value.Render(c.Card.Value)
	if c.Card.ValueAfter != "" {
		value += " " + styles.Pill(c.Card.ValueAfter+" after", c.Pill)
	}

	lines := []string{styles.Label.Render(c.Card.Title), value}
	if c.Card.ValueBottom != "" {
		lines = append(lines, styles.Change(c.Card.ValueBottom, c.Card.BottomColor))
	}

	box := styles.Card.Width(width)
	if c.Selected {
		box = box.BorderForeground(styles.BorderFocused)
	}
	if !c.Card.Relevant {
		box = box.Faint(true)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// CardGrid lays out the cards of a display model two per row. selected is
// an index into OrderedCards, or -1.
func CardGrid(dm vault.DisplayModel, selected, width int) string {
	cards := OrderedCards(dm.Cards)
	cardWidth := max((width-4)/2, 24)

	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = CardView{Card: c, Pill: dm.AfterPill, Selected: i == selected, Width: cardWidth}.Render()
	}
	return gridRows(blocks, 2, "  ")
}

// OrderedCards lists the cards in display order.
func OrderedCards(c vault.Cards) []vault.Card {
	return []vault.Card{c.LiquidationPrice, c.CurrentPrice, c.CollateralLocked, c.NetValue, c.DynamicStopPrice}
}
