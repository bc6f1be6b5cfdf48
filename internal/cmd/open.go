package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dallionking/vaultdesk/internal/config"
	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/logging"
	"github.com/Dallionking/vaultdesk/internal/session"
	"github.com/Dallionking/vaultdesk/internal/tui/models"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/tui/views"
	"github.com/Dallionking/vaultdesk/internal/vat"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

var openCmd = &cobra.Command{
	Use:   "open [ilk]",
	Short: "Open a vault with the interactive wizard",
	Long: `Launch the open-vault wizard for an ilk (default: defaultIlk from
vaultdesk.json).

The wizard reads the ilk from the market file and reloads it whenever the
file changes. Proxy, allowance and vault transactions go to a simulated
chain configured under "session".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, paths, err := loadProject()
		if err != nil {
			return err
		}
		if err := config.EnsureDirectories(paths); err != nil {
			return err
		}

		ilk := cfg.DefaultIlk
		if len(args) == 1 {
			ilk = args[0]
		}

		log, err := logging.New(cfg.Logging, logging.ModeTUI, paths.LogFile)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		market, err := feed.LoadMarket(paths.MarketFile, ilk)
		if err != nil {
			return err
		}

		opts, err := sessionOptions(cfg.Session, market, log)
		if err != nil {
			return err
		}
		sess := session.New(opts)

		watcher, err := feed.NewWatcher(paths.MarketFile, ilk, log)
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		log.Info("opening vault wizard",
			zap.String("ilk", market.Ilk),
			zap.String("token", market.Token),
			zap.Stringer("owner", opts.Owner),
		)

		var path string
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return sess.Run(gctx)
		})
		g.Go(func() error {
			defer cancel()
			var runErr error
			path, runErr = views.RunOpenVault(gctx, models.OpenVaultOptions{
				Controller: sess,
				Snapshots:  sess.Snapshots(),
				Markets:    watcher.Watch(gctx),
				Navigator: vault.NavigatorFunc(func(p string) {
					log.Info("navigating to vault", zap.String("path", p))
				}),
				Percent: format.Options{
					Precision: int32(cfg.Display.PercentPrecision),
					RoundMode: format.RoundDown,
				},
				SnapshotDir: paths.Snapshots,
				Log:         log,
			})
			if errors.Is(runErr, tea.ErrProgramKilled) {
				return nil
			}
			return runErr
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), styles.Green("vault opened: ")+path)
		}
		return nil
	},
}

// sessionOptions turns the session block of vaultdesk.json into session
// options for market. Legacy failure stage tags are accepted with a warning.
func sessionOptions(cfg config.SessionConfig, market feed.Market, log *zap.Logger) (session.Options, error) {
	if log == nil {
		log = zap.NewNop()
	}

	owner, ok, err := vat.ParseProxyAddress(cfg.Owner)
	if err != nil {
		return session.Options{}, fmt.Errorf("session.owner: %w", err)
	}
	if !ok {
		return session.Options{}, fmt.Errorf("session.owner: missing")
	}

	proxy, _, err := vat.ParseProxyAddress(cfg.ProxyAddress)
	if err != nil {
		return session.Options{}, fmt.Errorf("session.proxyAddress: %w", err)
	}

	allowance := decimal.Zero
	if cfg.Allowance != "" {
		allowance, err = decimal.NewFromString(cfg.Allowance)
		if err != nil {
			return session.Options{}, fmt.Errorf("session.allowance: %w", err)
		}
	}

	var fails []vault.Stage
	for _, tag := range cfg.FailStages {
		stage, legacy, err := vault.ParseStage(tag)
		if err != nil {
			return session.Options{}, fmt.Errorf("session.failStages: %w", err)
		}
		if !stage.IsFailure() {
			return session.Options{}, fmt.Errorf("session.failStages: %q is not a failure stage", tag)
		}
		if legacy {
			log.Warn("legacy stage tag in session.failStages",
				zap.String("tag", tag),
				zap.Stringer("stage", stage),
			)
		}
		fails = append(fails, stage)
	}

	delay := time.Duration(cfg.ChainDelayMs) * time.Millisecond
	return session.Options{
		Market:       market,
		Owner:        owner,
		ProxyAddress: proxy,
		Allowance:    allowance,
		Chain:        session.NewSimChain(delay, cfg.FirstVaultID, fails),
		Log:          log,
	}, nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
