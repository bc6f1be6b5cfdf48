package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tui/components"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

var inspectWidth int

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Render a saved wizard snapshot",
	Long: `Render a snapshot saved from the wizard with the "s" key.

The snapshot is resolved again with the current time and the configured
percentage precision, so countdowns reflect now rather than save time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadProject()
		if err != nil {
			return err
		}

		snap, err := readSnapshot(args[0])
		if err != nil {
			return err
		}

		pct := format.Options{Precision: int32(cfg.Display.PercentPrecision), RoundMode: format.RoundDown}
		dm, err := vault.ResolveWith(snap, time.Now(), pct)
		if err != nil {
			return err
		}
		renderInspect(cmd.OutOrStdout(), snap, dm, inspectWidth)
		return nil
	},
}

func readSnapshot(path string) (vault.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return vault.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}
	var snap vault.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return vault.Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap, nil
}

func renderInspect(w io.Writer, snap vault.Snapshot, dm vault.DisplayModel, width int) {
	if width <= 0 {
		width = 80
	}
	row := func(label, value string) {
		fmt.Fprintf(w, "  %s %s\n", styles.Label.Render(fmt.Sprintf("%-26s", label)), value)
	}

	title := fmt.Sprintf("%s vault · %s", snap.Ilk, dm.Stage)
	if snap.ID != "" {
		title += " · #" + snap.ID
	}
	fmt.Fprintln(w, styles.Title.Render(title))
	fmt.Fprintln(w, styles.Dim(fmt.Sprintf("  %s / %s", dm.Phase, dm.Step)))
	fmt.Fprintln(w)

	h := dm.Headline
	ratio := styles.Risk(h.CollateralizationRatio, h.CollateralizationRatioColor)
	row("Liquidation price", styles.Value.Render(h.LiquidationPrice))
	row("Collateralization ratio", ratio)
	row("Collateral locked", styles.Value.Render(h.CollateralLocked)+" "+styles.Dim(h.CollateralLockedUSD))
	price := styles.Value.Render(h.CurrentPrice)
	if !h.IsStaticPrice {
		price += " " + styles.Dim("next") + " " + styles.Change(h.NextPrice+" "+h.NextPriceChange, h.NextPriceColor)
	}
	row("Current price", price)
	fmt.Fprintln(w)

	if len(dm.Details) > 0 {
		fmt.Fprintln(w, styles.Subtitle.Render("Details"))
		for _, d := range dm.Details {
			value := d.Value
			if d.Unit != "" {
				value += " " + d.Unit
			}
			row(d.Label, styles.Value.Render(value))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, components.CardGrid(dm, -1, width))
	fmt.Fprintln(w)

	var summary []string
	for _, s := range dm.Summary {
		item := s.Label + " " + s.Value
		if s.ValueAfter != "" {
			item += " → " + s.ValueAfter
		}
		summary = append(summary, item)
	}
	fmt.Fprintln(w, "  "+strings.Join(summary, styles.Dim("  │  ")))

	b := dm.Buttons
	buttons := styles.PrimaryButton(b.Primary.Label.String(), b.Primary.Enabled)
	if b.Secondary.Visible {
		buttons += "   " + styles.SecondaryButton(b.Secondary.Label.String())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+buttons)

	for _, e := range snap.Errors {
		fmt.Fprintln(w, "  "+styles.ErrorText.Render("✗ "+e))
	}
}

func init() {
	inspectCmd.Flags().IntVar(&inspectWidth, "width", 80, "render width")
	rootCmd.AddCommand(inspectCmd)
}
