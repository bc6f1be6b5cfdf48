package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/vaultdesk/internal/config"
	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

func TestSessionOptions(t *testing.T) {
	cfg := config.Default().Session
	cfg.ProxyAddress = "0x00000000000000000000000000000000000000c1"
	cfg.Allowance = "2.5"
	cfg.FailStages = []string{"allowanceFailure"}

	opts, err := sessionOptions(cfg, feed.Market{Ilk: "ETH-A", Token: "ETH"}, nil)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(cfg.Owner), opts.Owner)
	assert.Equal(t, common.HexToAddress(cfg.ProxyAddress), opts.ProxyAddress)
	assert.True(t, opts.Allowance.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "ETH-A", opts.Market.Ilk)
	assert.NotNil(t, opts.Chain)
	assert.NotNil(t, opts.Log)
}

func TestSessionOptionsDefaultsToNoProxy(t *testing.T) {
	opts, err := sessionOptions(config.Default().Session, feed.Market{}, nil)
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, opts.ProxyAddress)
	assert.True(t, opts.Allowance.IsZero())
}

func TestSessionOptionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.SessionConfig)
		want   string
	}{
		{"missing owner", func(c *config.SessionConfig) { c.Owner = "" }, "session.owner"},
		{"bad owner", func(c *config.SessionConfig) { c.Owner = "0x12" }, "session.owner"},
		{"bad proxy", func(c *config.SessionConfig) { c.ProxyAddress = "nope" }, "session.proxyAddress"},
		{"bad allowance", func(c *config.SessionConfig) { c.Allowance = "lots" }, "session.allowance"},
		{"unknown stage", func(c *config.SessionConfig) { c.FailStages = []string{"meltdown"} }, "session.failStages"},
		{"non-failure stage", func(c *config.SessionConfig) { c.FailStages = []string{"editing"} }, "not a failure stage"},
		{"legacy non-failure stage", func(c *config.SessionConfig) { c.FailStages = []string{"transactionSuccess"} }, "not a failure stage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default().Session
			tt.mutate(&cfg)
			_, err := sessionOptions(cfg, feed.Market{}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetConfigPersists(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), []byte(`{"name": "desk"}`), 0644))
	_, err := config.Load(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, setConfig(&buf, "defaultIlk", "WBTC-A"))
	assert.Contains(t, buf.String(), "defaultIlk")

	cfg, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "WBTC-A", cfg.DefaultIlk)

	err = setConfig(&buf, "session.owner", "0x12")
	assert.ErrorContains(t, err, "setting session.owner")
}

func TestPrintMarkets(t *testing.T) {
	mf, err := config.ParseMarketFile([]byte(`{"markets": [
  {"ilk": "ETH-A", "token": "ETH", "liquidationRatio": "1.5", "price": {"current": "2000"}},
  {"ilk": "WBTC-A", "token": "WBTC", "liquidationRatio": "1.45", "price": {"current": "60000"}}
]}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printMarkets(&buf, mf, "eth-a"))
	out := buf.String()
	assert.Contains(t, out, "ETH-A")
	assert.Contains(t, out, "WBTC-A")
	assert.Contains(t, out, "$2,000.00")
	assert.Contains(t, out, "150.00%")
	assert.Contains(t, out, "default ilk")
}

func TestPrintMarketsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMarkets(&buf, &config.MarketFile{}, "ETH-A"))
	assert.Contains(t, buf.String(), "No markets")
}

func TestReadSnapshotAndRender(t *testing.T) {
	snap := vault.Snapshot{
		Stage:       vault.StageOpenSuccess,
		ID:          "7",
		Ilk:         "ETH-A",
		Token:       "ETH",
		CanProgress: true,
	}
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "ETH-A.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	back, err := readSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, vault.StageOpenSuccess, back.Stage)

	dm, err := vault.Resolve(back, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	renderInspect(&buf, back, dm, 80)
	out := buf.String()
	assert.Contains(t, out, "ETH-A vault")
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "Go to Vault #7")
	assert.Contains(t, out, "Liquidation price")
}

func TestReadSnapshotErrors(t *testing.T) {
	_, err := readSnapshot(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stage": "notAStage"}`), 0644))
	_, err = readSnapshot(path)
	assert.Error(t, err)
}
