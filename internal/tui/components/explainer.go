package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

var explainerText = map[vault.Explainer]string{
	vault.ExplainLiquidationPrice: `## Liquidation price

The collateral price at which the vault becomes available for liquidation.
Below it the vault is not collateralized enough and a **%s** penalty applies.`,
	vault.ExplainCurrentPrice: `## Current price

The oracle price the protocol uses right now. Oracle prices update once per
hour; the next price is already known and shown beneath the current one.`,
	vault.ExplainCollateralLocked: `## Collateral locked

The value of the collateral deposited into the vault, at the current oracle
price.`,
	vault.ExplainDynamicStopPrice: `## Dynamic stop price

The price at which stop-loss protection closes the vault. It moves with the
liquidation price and stays above it by the configured ratio.`,
	vault.ExplainCollateralizationRatio: `## Collateralization ratio

The value of the collateral divided by the Dai debt. It must stay above the
liquidation ratio of **%s**.`,
	vault.ExplainBuyingPower: `## Buying power

The additional Dai the vault could generate at the current price while
staying at the liquidation ratio: **%s** right now.`,
}

// ExplainerMarkdown returns the modal text for e. The net value explainer
// embeds the breakdown of the display model.
func ExplainerMarkdown(e vault.Explainer, dm vault.DisplayModel) string {
	switch e {
	case vault.ExplainNetValue:
		return netValueMarkdown(dm.NetValue)
	case vault.ExplainLiquidationPrice:
		return fmt.Sprintf(explainerText[e], detailValue(dm, "Liquidation Penalty"))
	case vault.ExplainCollateralizationRatio:
		return fmt.Sprintf(explainerText[e], detailValue(dm, "Liquidation Ratio"))
	case vault.ExplainBuyingPower:
		return fmt.Sprintf(explainerText[e], detailValue(dm, "Available to Generate")+" DAI")
	}
	return explainerText[e]
}

func detailValue(dm vault.DisplayModel, label string) string {
	for _, d := range dm.Details {
		if d.Label == label {
			return d.Value
		}
	}
	return format.Placeholder
}

func netValueMarkdown(nv vault.NetValue) string {
	var b strings.Builder
	b.WriteString("## Net value\n\n")
	b.WriteString("The value of the collateral minus the Dai debt, at the market price of ")
	b.WriteString(format.USD(nv.QuotedPrice) + ".\n\n")

	if !nv.HasVault {
		b.WriteString("_The vault has not been opened yet._\n")
		return b.String()
	}

	if nv.ShowCollateralColumn {
		b.WriteString("| | Collateral | USD |\n|---|---:|---:|\n")
		fmt.Fprintf(&b, "| Locked | %s | %s |\n", format.CryptoBalance(nv.LockedCollateral), format.USD(nv.LockedCollateralUSD))
		fmt.Fprintf(&b, "| Debt | %s | %s |\n", format.CryptoBalance(nv.DebtInCollateral), format.USD(nv.Debt))
		fmt.Fprintf(&b, "| **Net value** | %s | %s |\n", format.CryptoBalance(nv.NetValueInCollateral), format.USD(nv.NetValueUSD))
	} else {
		b.WriteString("| | USD |\n|---|---:|\n")
		fmt.Fprintf(&b, "| Locked | %s |\n", format.USD(nv.LockedCollateralUSD))
		fmt.Fprintf(&b, "| Debt | %s |\n", format.USD(nv.Debt))
		fmt.Fprintf(&b, "| **Net value** | %s |\n", format.USD(nv.NetValueUSD))
	}
	fmt.Fprintf(&b, "\nGas spent: %s\n", format.USD(nv.TotalGasSpentUSD))
	return b.String()
}

// RenderMarkdown renders md for the terminal, falling back to the raw text
// when glamour fails.
func RenderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Explainer renders the modal for e.
func Explainer(e vault.Explainer, dm vault.DisplayModel, width int) string {
	body := RenderMarkdown(ExplainerMarkdown(e, dm), max(width-6, 20))
	return styles.Modal.Width(width).Render(body + "\n\n" + styles.Dim("esc or ? to close"))
}
