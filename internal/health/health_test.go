package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/vaultdesk/internal/config"
)

const markets = `{
  "updatedAt": "2026-03-01T12:00:00Z",
  "markets": [
    {"ilk": "ETH-A", "liquidationRatio": "1.5", "price": {"current": "2000"},
     "vat": {"Art": "1000000000000000000", "rate": "1000000000000000000000000000"}},
    {"ilk": "WBTC-A", "liquidationRatio": "1.45", "price": {"current": "60000"}}
  ]
}`

func project(t *testing.T, marketJSON string) *Checker {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "markets.json"), []byte(marketJSON), 0644))

	cfg, err := config.Load(root)
	require.NoError(t, err)
	return NewChecker(config.NewPaths(root), cfg)
}

func byName(r *Report) map[string]CheckResult {
	out := make(map[string]CheckResult, len(r.Results))
	for _, res := range r.Results {
		out[res.Name] = res
	}
	return out
}

func TestRunAllHealthyProject(t *testing.T) {
	c := project(t, markets)
	r := c.RunAll(context.Background())

	require.Equal(t, 8, r.Total)
	res := byName(r)
	assert.Equal(t, StatusPass, res["config-file"].Status)
	assert.Equal(t, StatusPass, res["config-valid"].Status, res["config-valid"].Message)
	assert.Equal(t, StatusPass, res["proxy-address"].Status)
	assert.Equal(t, "2 markets, updated 2026-03-01 12:00", res["market-file"].Message)
	assert.Equal(t, "ETH-A at $2,000.00", res["default-ilk"].Message)
	assert.Equal(t, StatusPass, res["vat-values"].Status)

	// Runtime directories do not exist yet.
	assert.Equal(t, StatusWarn, res["log-dir"].Status)
	assert.Equal(t, StatusWarn, res["snapshot-dir"].Status)
	assert.True(t, r.Healthy)
	assert.Equal(t, 2, r.Warned)

	require.NoError(t, config.EnsureDirectories(c.paths))
	res = byName(c.RunCategory(context.Background(), "runtime"))
	assert.Equal(t, StatusPass, res["log-dir"].Status)
	assert.Equal(t, "0 saved snapshots", res["snapshot-dir"].Message)
}

func TestBadVatValuesFail(t *testing.T) {
	c := project(t, `{"markets": [{"ilk": "ETH-A", "vat": {"Art": "not-a-number"}}]}`)
	r := c.RunCategory(context.Background(), "market")

	require.Equal(t, 3, r.Total)
	res := byName(r)
	assert.Equal(t, StatusPass, res["market-file"].Status)
	assert.Equal(t, StatusFail, res["default-ilk"].Status)
	assert.Equal(t, "undecodable: ETH-A", res["vat-values"].Message)
	assert.False(t, r.Healthy)
}

func TestCancelledContextFailsChecks(t *testing.T) {
	c := project(t, markets)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := c.RunAll(ctx)
	assert.Equal(t, r.Total, r.Failed)
	assert.Equal(t, "context cancelled", r.Results[0].Message)
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(project(t, markets).RunAll(context.Background()))
	assert.Contains(t, out, "Configuration")
	assert.Contains(t, out, "Market Data")
	assert.Contains(t, out, "DEGRADED")
}

func TestUnknownCategoryIsEmpty(t *testing.T) {
	r := project(t, markets).RunCategory(context.Background(), "network")
	assert.Zero(t, r.Total)
	assert.True(t, r.Healthy)
}

func TestWorst(t *testing.T) {
	assert.Equal(t, StatusPass, (&Report{Passed: 3}).Worst())
	assert.Equal(t, StatusWarn, (&Report{Passed: 2, Warned: 1}).Worst())
	assert.Equal(t, StatusFail, (&Report{Warned: 1, Failed: 1}).Worst())
}

func TestShortDuration(t *testing.T) {
	assert.Equal(t, "<1ms", shortDuration(200*time.Microsecond))
	assert.Equal(t, "42ms", shortDuration(42*time.Millisecond))
	assert.Equal(t, "1.5s", shortDuration(1500*time.Millisecond))
}
