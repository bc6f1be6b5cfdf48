package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dallionking/vaultdesk/internal/health"
)

var doctorCategory string

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"health"},
	Short:   "Check the configuration, market data and runtime directories",
	Long: `Run diagnostic checks against the project.

Checks are grouped into categories:
  config   - vaultdesk.json presence and validity, proxy address
  market   - market file, default ilk, raw vat values
  runtime  - log and snapshot directories

Use --category to run only a specific group.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, paths, err := loadProject()
		if err != nil {
			return err
		}

		checker := health.NewChecker(paths, cfg)
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var report *health.Report
		if doctorCategory != "" {
			report = checker.RunCategory(ctx, doctorCategory)
		} else {
			report = checker.RunAll(ctx)
		}
		if report.Total == 0 {
			return fmt.Errorf("no checks in category %q", doctorCategory)
		}

		fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))
		if !report.Healthy {
			return fmt.Errorf("%d check(s) failed", report.Failed)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorCategory, "category", "", "run checks in a category: config, market, or runtime")
	rootCmd.AddCommand(doctorCmd)
}
