package models

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

var clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeController struct {
	deposits   []decimal.NullDecimal
	generates  []decimal.NullDecimal
	allowances []decimal.NullDecimal
	markets    []feed.Market
}

func (f *fakeController) SetDeposit(v decimal.NullDecimal)   { f.deposits = append(f.deposits, v) }
func (f *fakeController) SetGenerate(v decimal.NullDecimal)  { f.generates = append(f.generates, v) }
func (f *fakeController) SetAllowance(v decimal.NullDecimal) { f.allowances = append(f.allowances, v) }
func (f *fakeController) UpdateMarket(m feed.Market)         { f.markets = append(f.markets, m) }

type pathRecorder struct{ paths []string }

func (p *pathRecorder) GoToPath(path string) { p.paths = append(p.paths, path) }

func newModel(t *testing.T, opts OpenVaultOptions) (OpenVaultModel, *fakeController) {
	t.Helper()
	ctrl := &fakeController{}
	opts.Controller = ctrl
	opts.Now = func() time.Time { return clock }
	return NewOpenVaultModel(opts), ctrl
}

func update(t *testing.T, m OpenVaultModel, msg tea.Msg) (OpenVaultModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	om, ok := next.(OpenVaultModel)
	require.True(t, ok)
	return om, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func editing() vault.Snapshot {
	return vault.Snapshot{
		Stage:             vault.StageEditing,
		Ilk:               "ETH-A",
		Token:             "ETH",
		InputAmountsEmpty: true,
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
		err   error
	}{
		{"", false, "", nil},
		{"   ", false, "", nil},
		{"10", true, "10", nil},
		{"1,234.5", true, "1234.5", nil},
		{" 0.001 ", true, "0.001", nil},
		{"-1", false, "", ErrInvalidAmount},
		{"abc", false, "", ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := parseAmount(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.valid, v.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, v.Decimal.String())
			}
		})
	}
}

func TestEditableFields(t *testing.T) {
	assert.Equal(t, []field{fieldDeposit, fieldGenerate}, editableFields(vault.StageEditing))
	assert.Equal(t, []field{fieldDeposit, fieldGenerate}, editableFields(vault.StageEditingWaitingToContinue))
	assert.Equal(t, []field{fieldAllowance}, editableFields(vault.StageAllowanceWaitingForConfirmation))
	assert.Equal(t, []field{fieldAllowance}, editableFields(vault.StageAllowanceFailure))
	assert.Empty(t, editableFields(vault.StageAllowanceInProgress))
	assert.Empty(t, editableFields(vault.StageOpenWaitingForConfirmation))
}

func TestTypingForwardsAmounts(t *testing.T) {
	m, ctrl := newModel(t, OpenVaultOptions{})
	m, _ = update(t, m, snapshotMsg(editing()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldDeposit, m.focus)
	m, _ = update(t, m, keyRunes("1"))
	m, _ = update(t, m, keyRunes("0"))

	require.Len(t, ctrl.deposits, 2)
	assert.Equal(t, "10", ctrl.deposits[1].Decimal.String())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldGenerate, m.focus)
	m, _ = update(t, m, keyRunes("x"))
	require.Len(t, ctrl.generates, 1)
	assert.False(t, ctrl.generates[0].Valid)
	assert.ErrorIs(t, m.inputErr[fieldGenerate], ErrInvalidAmount)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, fieldNone, m.focus)
}

func TestFocusDroppedWhenStageLeavesEditing(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	m, _ = update(t, m, snapshotMsg(editing()))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, fieldDeposit, m.focus)

	s := editing()
	s.Stage = vault.StageProxyWaitingForConfirmation
	m, _ = update(t, m, snapshotMsg(s))
	assert.Equal(t, fieldNone, m.focus)
}

func TestAllowancePrefill(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	s := editing()
	s.Stage = vault.StageAllowanceWaitingForConfirmation
	s.AllowanceAmount = vault.Some(decimal.RequireFromString("2.5"))
	m, _ = update(t, m, snapshotMsg(s))
	assert.Equal(t, "2.5", m.inputs[fieldAllowance].Value())
}

func TestEnterInvokesProgress(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	calls := 0
	s := editing()
	s.InputAmountsEmpty = false
	s.CanProgress = true
	s.Progress = vault.Available(func() { calls++ })
	m, _ = update(t, m, snapshotMsg(s))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, calls)
	assert.Nil(t, cmd)
	assert.Empty(t, m.Navigated())
}

func TestEnterWhenDisabledLogsReason(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	s := editing()
	s.Errors = []string{"generate exceeds maximum"}
	m, _ = update(t, m, snapshotMsg(s))
	before := m.logs.Len()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, before+1, m.logs.Len())
}

func TestGoToVaultNavigatesAndQuits(t *testing.T) {
	nav := &pathRecorder{}
	m, _ := newModel(t, OpenVaultOptions{Navigator: nav})
	progressed := false
	s := editing()
	s.Stage = vault.StageOpenSuccess
	s.ID = "42"
	s.CanProgress = true
	s.Progress = vault.Available(func() { progressed = true })
	m, _ = update(t, m, snapshotMsg(s))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "/42", m.Navigated())
	assert.Equal(t, []string{"/42"}, nav.paths)
	assert.True(t, progressed)
}

func TestBackspaceRegresses(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	regressed := false
	s := editing()
	s.Stage = vault.StageOpenFailure
	s.CanRegress = true
	s.Regress = vault.Available(func() { regressed = true })
	m, _ = update(t, m, snapshotMsg(s))

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, regressed)
}

func TestCreateProxyKey(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	created := false
	s := editing()
	s.Stage = vault.StageProxyWaitingForConfirmation
	s.CreateProxy = vault.Available(func() { created = true })
	m, _ = update(t, m, snapshotMsg(s))

	_, _ = update(t, m, keyRunes("p"))
	assert.True(t, created)
}

func TestMarketUpdateForwardsAndRecordsHistory(t *testing.T) {
	m, ctrl := newModel(t, OpenVaultOptions{})
	mkt := feed.Market{Ilk: "ETH-A", Token: "ETH"}
	mkt.PriceInfo.CurrentCollateralPrice = decimal.RequireFromString("2000")

	m, _ = update(t, m, marketMsg(feed.MarketUpdate{Market: mkt, Time: clock}))
	require.Len(t, ctrl.markets, 1)
	assert.Equal(t, []float64{2000}, m.history)

	m, _ = update(t, m, marketMsg(feed.MarketUpdate{Err: os.ErrNotExist, Time: clock}))
	assert.Len(t, ctrl.markets, 1)
	assert.Len(t, m.history, 1)
}

func TestQuitAsksForConfirmation(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	m, _ = update(t, m, snapshotMsg(editing()))

	m, cmd := update(t, m, keyRunes("q"))
	assert.Nil(t, cmd)
	require.NotNil(t, m.quit)

	m, cmd = update(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.quit)

	m, _ = update(t, m, keyRunes("q"))
	_, cmd = update(t, m, keyRunes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestExplainerToggle(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	m, _ = update(t, m, snapshotMsg(editing()))

	m, _ = update(t, m, keyRunes("v"))
	require.Equal(t, tabDetails, m.tab)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyRunes("?"))
	assert.Equal(t, vault.ExplainCurrentPrice, m.explaining)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, vault.ExplainNone, m.explaining)
}

func TestBuyingPowerExplainer(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	s := editing()
	s.MaxGenerateAmountCurrentPrice = decimal.NewFromInt(1200)
	m, _ = update(t, m, snapshotMsg(s))
	m.width, m.height = 100, 40

	m, _ = update(t, m, keyRunes("b"))
	assert.Equal(t, vault.ExplainBuyingPower, m.explaining)
	assert.Contains(t, m.View(), "to close")

	m, _ = update(t, m, keyRunes("b"))
	assert.Equal(t, vault.ExplainNone, m.explaining)
}

func TestSaveSnapshot(t *testing.T) {
	dir := t.TempDir()
	m, _ := newModel(t, OpenVaultOptions{SnapshotDir: dir})
	s := editing()
	s.DepositAmount = vault.Some(decimal.RequireFromString("3"))
	m, _ = update(t, m, snapshotMsg(s))

	_, cmd := update(t, m, keyRunes("s"))
	require.NotNil(t, cmd)
	saved, ok := cmd().(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.True(t, strings.HasPrefix(saved.path, dir))

	data, err := os.ReadFile(saved.path)
	require.NoError(t, err)
	var back vault.Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, vault.StageEditing, back.Stage)
	assert.Equal(t, "3", back.DepositAmount.Decimal.String())
}

func TestViewRendersTabs(t *testing.T) {
	m, _ := newModel(t, OpenVaultOptions{})
	assert.Contains(t, m.View(), "waiting for the vault pipeline")

	m, _ = update(t, m, snapshotMsg(editing()))
	out := m.View()
	assert.Contains(t, out, "Open vault")
	assert.Contains(t, out, "Configure your vault")
	assert.Contains(t, out, "Enter an amount")

	m, _ = update(t, m, keyRunes("v"))
	assert.Contains(t, m.View(), "Liquidation Price")
}
