package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dallionking/vaultdesk/internal/config"
	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/vat"
)

func (c *Checker) registerChecks() {
	c.add("config-file", CategoryConfig, c.checkConfigFile)
	c.add("config-valid", CategoryConfig, c.checkConfigValid)
	c.add("proxy-address", CategoryConfig, c.checkProxyAddress)

	c.add("market-file", CategoryMarket, c.checkMarketFile)
	c.add("default-ilk", CategoryMarket, c.checkDefaultIlk)
	c.add("vat-values", CategoryMarket, c.checkVatValues)

	c.add("log-dir", CategoryRuntime, c.checkLogDir)
	c.add("snapshot-dir", CategoryRuntime, c.checkSnapshotDir)
}

// ---------------------------------------------------------------------------
// Config checks
// ---------------------------------------------------------------------------

func (c *Checker) checkConfigFile(ctx context.Context) CheckResult {
	if _, err := os.Stat(c.paths.Config); err != nil {
		return CheckResult{Status: StatusWarn, Message: config.FileName + " not found, using defaults"}
	}
	return CheckResult{Status: StatusPass, Message: c.paths.Config}
}

func (c *Checker) checkConfigValid(ctx context.Context) CheckResult {
	errs := config.Validate(c.cfg)
	switch len(errs) {
	case 0:
		return CheckResult{Status: StatusPass, Message: fmt.Sprintf("valid (v%s)", c.cfg.Version)}
	case 1:
		return CheckResult{Status: StatusFail, Message: errs[0].Error()}
	default:
		return CheckResult{Status: StatusFail, Message: fmt.Sprintf("%d problems, first: %s", len(errs), errs[0].Error())}
	}
}

func (c *Checker) checkProxyAddress(ctx context.Context) CheckResult {
	addr, ok, err := vat.ParseProxyAddress(c.cfg.Session.ProxyAddress)
	switch {
	case err != nil:
		return CheckResult{Status: StatusFail, Message: err.Error()}
	case !ok:
		return CheckResult{Status: StatusPass, Message: "none, the wizard creates one"}
	}
	return CheckResult{Status: StatusPass, Message: addr.Hex()}
}

// ---------------------------------------------------------------------------
// Market checks
// ---------------------------------------------------------------------------

func (c *Checker) loadMarkets() (*config.MarketFile, error) {
	c.marketsOnce.Do(func() {
		c.markets, c.marketsErr = config.LoadMarketFile(c.paths.MarketFile)
	})
	return c.markets, c.marketsErr
}

func (c *Checker) checkMarketFile(ctx context.Context) CheckResult {
	mf, err := c.loadMarkets()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	msg := fmt.Sprintf("%d markets", len(mf.Markets))
	if !mf.UpdatedAt.IsZero() {
		msg += ", updated " + mf.UpdatedAt.Format("2006-01-02 15:04")
	}
	return CheckResult{Status: StatusPass, Message: msg}
}

func (c *Checker) checkDefaultIlk(ctx context.Context) CheckResult {
	mf, err := c.loadMarkets()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "market file unavailable"}
	}
	spec, err := mf.Find(c.cfg.DefaultIlk)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	m, err := feed.MarketFromSpec(*spec)
	if err != nil {
		return CheckResult{Status: StatusFail, Message: err.Error()}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s at %s", m.Ilk, format.USD(m.PriceInfo.CurrentCollateralPrice)),
	}
}

func (c *Checker) checkVatValues(ctx context.Context) CheckResult {
	mf, err := c.loadMarkets()
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "market file unavailable"}
	}
	var bad []string
	for _, spec := range mf.Markets {
		if _, err := feed.MarketFromSpec(spec); err != nil {
			bad = append(bad, spec.Ilk)
		}
	}
	if len(bad) > 0 {
		return CheckResult{Status: StatusFail, Message: "undecodable: " + strings.Join(bad, ", ")}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d ilks decode", len(mf.Markets))}
}

// ---------------------------------------------------------------------------
// Runtime checks
// ---------------------------------------------------------------------------

func (c *Checker) checkLogDir(ctx context.Context) CheckResult {
	dir := filepath.Dir(c.paths.LogFile)
	if _, err := os.Stat(dir); err != nil {
		return CheckResult{Status: StatusWarn, Message: "missing, created on first run: " + dir}
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return CheckResult{Status: StatusFail, Message: "not writable: " + dir}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return CheckResult{Status: StatusPass, Message: dir}
}

func (c *Checker) checkSnapshotDir(ctx context.Context) CheckResult {
	info, err := os.Stat(c.paths.Snapshots)
	switch {
	case err != nil:
		return CheckResult{Status: StatusWarn, Message: "missing, created on first save"}
	case !info.IsDir():
		return CheckResult{Status: StatusFail, Message: "not a directory: " + c.paths.Snapshots}
	}
	entries, _ := os.ReadDir(c.paths.Snapshots)
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("%d saved snapshots", len(entries))}
}
