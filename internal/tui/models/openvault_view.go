package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tokens"
	"github.com/Dallionking/vaultdesk/internal/tui/components"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// View renders the active tab, or an overlay when one is open.
func (m OpenVaultModel) View() string {
	if !m.hasSnap {
		return "\n  " + m.spin.View() + " waiting for the vault pipeline..."
	}
	if m.dmErr != nil {
		return "\n  " + styles.Red("cannot display vault: "+m.dmErr.Error()) + "\n"
	}

	inner := clampWidth(m.width-4, 96)
	sections := []string{
		m.renderHeader(),
		components.TabBar{Tabs: tabNames, ActiveTab: m.tab, Status: m.dm.Stage.String(), Width: m.width}.Render(),
		"",
	}

	switch {
	case m.quit != nil:
		sections = append(sections, indent(m.quit.View()))
	case m.explaining != vault.ExplainNone:
		sections = append(sections, indent(components.Explainer(m.explaining, m.dm, min(inner, 72))))
	case m.tab == tabDetails:
		sections = append(sections, m.viewDetails(inner))
	default:
		sections = append(sections, m.viewOpen(inner))
	}

	sections = append(sections, "", m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OpenVaultModel) renderHeader() string {
	h := m.dm.Headline
	next := ""
	if !h.IsStaticPrice {
		next = h.NextPrice
	}
	return components.Header{
		Ilk:     m.snap.Ilk,
		Price:   h.CurrentPrice,
		Next:    next,
		Change:  h.NextPriceColor,
		History: m.history,
		Proxy:   m.snap.ProxyAddress,
		Width:   m.width,
	}.Render()
}

func (m OpenVaultModel) renderFooter() string {
	switch {
	case m.focus != fieldNone:
		return components.InputFooter(m.width).Render()
	case m.tab == tabDetails:
		return components.DetailsFooter(m.width).Render()
	}
	b := m.dm.Buttons
	secondary := ""
	if b.Secondary.Visible {
		secondary = b.Secondary.Label.String()
	}
	return components.WizardFooter(m.width, b.Primary.Label.String(), secondary,
		m.snap.Stage == vault.StageProxyWaitingForConfirmation).Render()
}

// ---------------------------------------------------------------------------
// Open vault tab
// ---------------------------------------------------------------------------

func (m OpenVaultModel) viewOpen(width int) string {
	progress := components.ProgressStep{
		Steps:   phaseLabels(),
		Current: int(m.dm.Phase),
		Failed:  m.dm.Step == vault.StepFailure,
		Done:    m.dm.Stage == vault.StageOpenSuccess,
	}

	sections := []string{
		indent(progress.Render()),
		"",
		indent(m.viewHeadline(width)),
		"",
		indent(styles.Panel.Width(width).Render(m.viewPanel())),
	}
	if len(m.snap.Errors) > 0 {
		var errs []string
		for _, e := range m.snap.Errors {
			errs = append(errs, styles.ErrorText.Render("✗ "+e))
		}
		sections = append(sections, indent(strings.Join(errs, "\n")))
	}
	sections = append(sections, "", indent(m.viewButtons()), "", indent(m.logs.View()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OpenVaultModel) viewHeadline(width int) string {
	h := m.dm.Headline

	ratio := styles.Risk(h.CollateralizationRatio, h.CollateralizationRatioColor)
	if m.dm.ShowAfterPill && h.CollateralizationRatio != format.Placeholder {
		ratio = styles.Pill(h.CollateralizationRatio, m.dm.AfterPill)
	}

	price := styles.Value.Render(h.CurrentPrice)
	if !h.IsStaticPrice {
		when := fmt.Sprintf("in %d min", h.NextPriceIn)
		if h.NextPriceImminent {
			when = styles.Gold(when)
		}
		price += styles.Label.Render("  next ") + styles.Change(h.NextPrice+" "+h.NextPriceChange, h.NextPriceColor) +
			" " + styles.Dim(when)
	}

	col := max(width/4, 18)
	cell := func(label, value string) string {
		return lipgloss.NewStyle().Width(col).Render(styles.Label.Render(label) + "\n" + value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Liquidation price", styles.Value.Render(h.LiquidationPrice)),
		cell("Collateralization ratio", ratio),
		cell("Collateral locked", styles.Value.Render(h.CollateralLocked)+"\n"+styles.Dim(h.CollateralLockedUSD)),
		lipgloss.NewStyle().Render(styles.Label.Render("Current price")+"\n"+price),
	)
}

func (m OpenVaultModel) viewPanel() string {
	symbol := tokens.Get(m.snap.Token).Symbol
	switch m.dm.Panel {
	case vault.PanelEditing:
		return m.viewEditing(symbol)
	case vault.PanelProxy:
		return m.viewProxy()
	case vault.PanelAllowance:
		return m.viewAllowance(symbol)
	case vault.PanelTransaction:
		return m.viewTransaction()
	}
	return m.viewSetupDone(symbol)
}

func (m OpenVaultModel) viewEditing(symbol string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Configure your vault") + "\n\n")
	b.WriteString(m.inputRow(fieldDeposit, "Deposit "+symbol, m.dm.Headline.CollateralLockedUSD))
	b.WriteString(m.inputRow(fieldGenerate, "Generate DAI",
		"max "+format.Amount(m.snap.MaxGenerateAmountCurrentPrice, "DAI")+" DAI"))
	b.WriteString("\n")

	for _, d := range m.dm.Details {
		value := d.Value
		if d.Unit != "" {
			value += " " + d.Unit
		}
		b.WriteString(fmt.Sprintf("%s %s\n", styles.Label.Render(padRight(d.Label, 24)), styles.Value.Render(value)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m OpenVaultModel) inputRow(f field, label, hint string) string {
	row := styles.Label.Render(padRight(label, 16)) + m.inputs[f].View() + "  " + styles.Dim(hint)
	if err := m.inputErr[f]; err != nil {
		row += "  " + styles.ErrorText.Render(err.Error())
	}
	return row + "\n"
}

func (m OpenVaultModel) viewProxy() string {
	lines := []string{
		styles.Title.Render("Create your proxy"),
		"",
		styles.Subtitle.Render("A proxy is a personal contract that bundles vault actions into single"),
		styles.Subtitle.Render("transactions. It is created once per wallet."),
		"",
	}
	switch m.dm.Step {
	case vault.StepApproval:
		lines = append(lines, m.spin.View()+" waiting for wallet approval")
	case vault.StepInProgress:
		lines = append(lines, m.spin.View()+" proxy transaction in progress")
	case vault.StepFailure:
		lines = append(lines, styles.Red("Proxy creation failed."))
	default:
		lines = append(lines, styles.Dim("Press p or enter to create the proxy."))
	}
	return strings.Join(lines, "\n")
}

func (m OpenVaultModel) viewAllowance(symbol string) string {
	lines := []string{
		styles.Title.Render("Set " + symbol + " allowance"),
		"",
		styles.Subtitle.Render("The proxy needs permission to move your " + symbol + " into the vault."),
		"",
		strings.TrimRight(m.inputRow(fieldAllowance, "Allowance", symbol), "\n"),
		"",
	}
	switch m.dm.Step {
	case vault.StepApproval:
		lines = append(lines, m.spin.View()+" waiting for wallet approval")
	case vault.StepInProgress:
		lines = append(lines, m.spin.View()+" allowance transaction in progress")
	case vault.StepFailure:
		lines = append(lines, styles.Red("Allowance approval failed."))
	}
	return strings.Join(lines, "\n")
}

func (m OpenVaultModel) viewTransaction() string {
	lines := []string{styles.Title.Render("Open " + m.snap.Ilk + " vault"), ""}
	for _, s := range m.dm.Summary {
		value := styles.Value.Render(s.Value)
		if s.ValueAfter != "" {
			value += styles.Dim(" → ") + styles.Pill(s.ValueAfter, m.dm.AfterPill)
		}
		lines = append(lines, styles.Label.Render(padRight(s.Label, 24))+" "+value)
	}
	lines = append(lines, "")

	switch m.dm.Step {
	case vault.StepApproval:
		lines = append(lines, m.spin.View()+" waiting for wallet approval")
	case vault.StepInProgress:
		lines = append(lines, m.spin.View()+" vault transaction in progress")
	case vault.StepFailure:
		lines = append(lines, styles.Red("Opening the vault failed."))
	case vault.StepSuccess:
		lines = append(lines, styles.Green(fmt.Sprintf("Vault #%s created.", m.snap.ID)))
	default:
		lines = append(lines, styles.Dim("Review the figures and create the vault."))
	}
	return strings.Join(lines, "\n")
}

func (m OpenVaultModel) viewSetupDone(symbol string) string {
	switch m.snap.Stage {
	case vault.StageProxySuccess:
		return styles.Green("Proxy created at "+m.snap.ProxyAddress) + "\n" + styles.Dim("Continue to the next step.")
	case vault.StageAllowanceSuccess:
		return styles.Green(symbol+" allowance set.") + "\n" + styles.Dim("Continue to create the vault.")
	}
	return ""
}

func (m OpenVaultModel) viewButtons() string {
	b := m.dm.Buttons
	label := b.Primary.Label.String()
	if b.Primary.Busy {
		label = m.spin.View() + " " + label
	}
	out := styles.PrimaryButton(label, b.Primary.Enabled)
	if b.Secondary.Visible {
		out += "   " + styles.SecondaryButton(b.Secondary.Label.String())
	}
	return out
}

// ---------------------------------------------------------------------------
// Vault details tab
// ---------------------------------------------------------------------------

func (m OpenVaultModel) viewDetails(width int) string {
	var summary []string
	for _, s := range m.dm.Summary {
		item := styles.Label.Render(s.Label) + " " + styles.Value.Render(s.Value)
		if s.ValueAfter != "" {
			item += " " + styles.Pill(s.ValueAfter, m.dm.AfterPill)
		}
		summary = append(summary, item)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		indent(components.CardGrid(m.dm, m.card, width)),
		"",
		indent(strings.Join(summary, styles.Dim("  │  "))),
	)
}

// ---------------------------------------------------------------------------
// Layout helpers
// ---------------------------------------------------------------------------

func phaseLabels() []string {
	phases := vault.AllPhases()
	labels := make([]string, len(phases))
	for i, p := range phases {
		labels[i] = p.String()
	}
	return labels
}

func clampWidth(w, maxW int) int {
	if w > maxW {
		return maxW
	}
	if w < 20 {
		return 20
	}
	return w
}

func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
