package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dallionking/vaultdesk/internal/config"
	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
)

// --- config (parent) ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `View the vaultdesk configuration.

When run without subcommands, displays the current configuration summary.

Subcommands:
  markets    List the markets in the market file
  set        Change one configuration key
  validate   Check the configuration for problems`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, paths, err := loadProject()
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg, paths)
		return nil
	},
}

func printConfig(w io.Writer, cfg *config.Config, paths *config.Paths) {
	row := func(label, value string) {
		fmt.Fprintf(w, "%s %s\n", styles.Label.Render(fmt.Sprintf("%-12s", label)), styles.Value.Render(value))
	}

	fmt.Fprintln(w, styles.Title.Render("Configuration"))
	fmt.Fprintln(w)
	row("NAME", cfg.Name)
	row("VERSION", cfg.Version)
	row("ROOT", paths.Root)
	row("MARKETS", paths.MarketFile)
	row("ILK", cfg.DefaultIlk)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Divider(50))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Session"))
	proxy := cfg.Session.ProxyAddress
	if proxy == "" {
		proxy = "none"
	}
	allowance := cfg.Session.Allowance
	if allowance == "" {
		allowance = "0"
	}
	fails := "none"
	if len(cfg.Session.FailStages) > 0 {
		fails = strings.Join(cfg.Session.FailStages, ", ")
	}
	row("  OWNER", cfg.Session.Owner)
	row("  PROXY", proxy)
	row("  ALLOWANCE", allowance)
	row("  DELAY", fmt.Sprintf("%dms", cfg.Session.ChainDelayMs))
	row("  FAILURES", fails)
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Logging"))
	row("  LEVEL", cfg.Logging.Level)
	row("  FILE", paths.LogFile)
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Display"))
	row("  PRECISION", fmt.Sprintf("%d", cfg.Display.PercentPrecision))
}

// --- config markets ---

var configMarketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the markets in the market file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, paths, err := loadProject()
		if err != nil {
			return err
		}
		mf, err := config.LoadMarketFile(paths.MarketFile)
		if err != nil {
			return fmt.Errorf("loading markets: %w", err)
		}
		return printMarkets(cmd.OutOrStdout(), mf, cfg.DefaultIlk)
	},
}

func printMarkets(w io.Writer, mf *config.MarketFile, defaultIlk string) error {
	fmt.Fprintln(w, styles.Title.Render("Markets"))
	fmt.Fprintln(w)

	if len(mf.Markets) == 0 {
		fmt.Fprintln(w, styles.Dim("  No markets in the market file"))
		return nil
	}

	fmt.Fprintf(w, "  %-12s %-8s %14s %10s %16s\n", "ILK", "TOKEN", "PRICE", "LIQ RATIO", "DEBT FLOOR")
	fmt.Fprintln(w, styles.Divider(66))
	for _, spec := range mf.Markets {
		m, err := feed.MarketFromSpec(spec)
		if err != nil {
			return err
		}
		marker := " "
		if strings.EqualFold(m.Ilk, defaultIlk) {
			marker = styles.Cyan("*")
		}
		fmt.Fprintf(w, "%s %-12s %-8s %14s %10s %16s\n",
			marker,
			m.Ilk,
			m.Token,
			format.USD(m.PriceInfo.CurrentCollateralPrice),
			format.RatioPercent(m.IlkData.LiquidationRatio, format.DisplayPercent),
			format.Amount(m.IlkData.DebtFloor, "DAI"),
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Dim("  * = default ilk"))
	return nil
}

// --- config validate ---

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadProject()
		if err != nil {
			return err
		}
		errs := config.Validate(cfg)
		w := cmd.OutOrStdout()
		if len(errs) == 0 {
			fmt.Fprintln(w, styles.Green("configuration is valid"))
			return nil
		}
		for _, e := range errs {
			fmt.Fprintln(w, "  "+styles.Red("x")+" "+e.Error())
		}
		return fmt.Errorf("%d configuration problem(s)", len(errs))
	},
}

// --- config set ---

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one configuration key",
	Long: `Write one key of vaultdesk.json, e.g.

  vaultdesk config set defaultIlk WBTC-A
  vaultdesk config set session.failStages allowanceFailure,openFailure

Keys use the dotted JSON names. Command line flags are not persisted.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := readConfig(); err != nil {
			return err
		}
		return setConfig(cmd.OutOrStdout(), args[0], args[1])
	},
}

func setConfig(w io.Writer, key, value string) error {
	if err := config.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	fmt.Fprintln(w, styles.Green("Set")+" "+styles.Label.Render(key)+" "+styles.Value.Render(value))
	return nil
}

func init() {
	configCmd.AddCommand(configMarketsCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
