package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/format"
	"github.com/Dallionking/vaultdesk/internal/tui/components"
	"github.com/Dallionking/vaultdesk/internal/tui/styles"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

// Controller receives the user's inputs. *session.Session implements it.
type Controller interface {
	SetDeposit(v decimal.NullDecimal)
	SetGenerate(v decimal.NullDecimal)
	SetAllowance(v decimal.NullDecimal)
	UpdateMarket(m feed.Market)
}

// OpenVaultOptions wires the model to its collaborators.
type OpenVaultOptions struct {
	Controller Controller
	Snapshots  <-chan vault.Snapshot
	// Markets carries watcher reloads; nil disables live prices.
	Markets <-chan feed.MarketUpdate
	// Navigator is told about the new vault page; nil only records it.
	Navigator vault.Navigator
	Percent   format.Options
	// SnapshotDir receives snapshots saved with "s".
	SnapshotDir string
	Log         *zap.Logger
	Now         func() time.Time
}

// ---------------------------------------------------------------------------
// Tabs and fields
// ---------------------------------------------------------------------------

const (
	tabOpen = iota
	tabDetails
)

var tabNames = []string{"Open vault", "Vault details"}

type field int

const (
	fieldNone field = iota
	fieldDeposit
	fieldGenerate
	fieldAllowance
)

// editableFields lists the inputs accepted in stage, in tab order.
func editableFields(stage vault.Stage) []field {
	switch {
	case stage.Phase() == vault.PhaseEditing:
		return []field{fieldDeposit, fieldGenerate}
	case stage == vault.StageAllowanceWaitingForConfirmation, stage == vault.StageAllowanceFailure:
		return []field{fieldAllowance}
	}
	return nil
}

// ErrInvalidAmount is reported for input that is not a non-negative number.
var ErrInvalidAmount = errors.New("invalid amount")

// parseAmount reads a user-typed amount. Grouping commas are ignored and an
// empty field is a missing value.
func parseAmount(raw string) (decimal.NullDecimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		return decimal.NullDecimal{}, ErrInvalidAmount
	}
	return vault.Some(v), nil
}

// ---------------------------------------------------------------------------
// Tea messages
// ---------------------------------------------------------------------------

type snapshotMsg vault.Snapshot

type marketMsg feed.MarketUpdate

type clockMsg time.Time

type savedMsg struct {
	path string
	err  error
}

func waitForSnapshot(ch <-chan vault.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

func waitForMarket(ch <-chan feed.MarketUpdate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return marketMsg(u)
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// ---------------------------------------------------------------------------
// OpenVaultModel
// ---------------------------------------------------------------------------

// OpenVaultModel implements tea.Model for the open-vault wizard. It renders
// the latest snapshot and forwards key presses to the snapshot's actions.
type OpenVaultModel struct {
	opts OpenVaultOptions
	log  *zap.Logger

	snap    vault.Snapshot
	hasSnap bool
	dm      vault.DisplayModel
	dmErr   error
	now     time.Time

	tab        int
	focus      field
	inputs     map[field]*textinput.Model
	inputErr   map[field]error
	card       int
	explaining vault.Explainer

	spin    spinner.Model
	logs    components.LogStream
	history []float64

	quit      *components.ConfirmDialog
	navigated string
	status    string

	width  int
	height int
}

// NewOpenVaultModel creates the wizard model.
func NewOpenVaultModel(opts OpenVaultOptions) OpenVaultModel {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	m := OpenVaultModel{
		opts:     opts,
		log:      log.Named("tui"),
		now:      opts.Now(),
		inputs:   make(map[field]*textinput.Model),
		inputErr: make(map[field]error),
		card:     -1,
		spin:     s,
		logs:     components.NewLogStream(76, 6),
		width:    80,
		height:   40,
	}
	m.inputs[fieldDeposit] = newAmountInput("0.00")
	m.inputs[fieldGenerate] = newAmountInput("0.00")
	m.inputs[fieldAllowance] = newAmountInput("unlimited")
	return m
}

func newAmountInput(placeholder string) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 24
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	return &ti
}

// Navigated returns the vault page the user asked to go to, if any.
func (m OpenVaultModel) Navigated() string { return m.navigated }

// Snapshot returns the last snapshot received.
func (m OpenVaultModel) Snapshot() (vault.Snapshot, bool) { return m.snap, m.hasSnap }

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init starts listening for snapshots, market reloads and the clock.
func (m OpenVaultModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.opts.Snapshots),
		waitForMarket(m.opts.Markets),
		clockTick(),
		m.spin.Tick,
	)
}

// Update processes messages and key events.
func (m OpenVaultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 60)
		m.height = msg.Height
		m.logs.SetSize(m.width-4, max(m.height/6, 4))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case snapshotMsg:
		m.applySnapshot(vault.Snapshot(msg))
		return m, waitForSnapshot(m.opts.Snapshots)

	case marketMsg:
		m.applyMarket(feed.MarketUpdate(msg))
		return m, waitForMarket(m.opts.Markets)

	case clockMsg:
		m.now = time.Time(msg)
		m.resolve()
		return m, clockTick()

	case savedMsg:
		if msg.err != nil {
			m.addLog("error", "snapshot", "save failed: "+msg.err.Error())
		} else {
			m.addLog("success", "snapshot", "saved "+msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Snapshot and market handling
// ---------------------------------------------------------------------------

func (m *OpenVaultModel) applySnapshot(s vault.Snapshot) {
	prev, had := m.snap, m.hasSnap
	m.snap, m.hasSnap = s, true
	m.resolve()

	if !had || prev.Stage != s.Stage {
		m.logStage(prev.Stage, s.Stage, had)
	}

	// Prefill the allowance field the first time the pipeline offers one.
	if in := m.inputs[fieldAllowance]; in.Value() == "" && s.AllowanceAmount.Valid && m.focus != fieldAllowance {
		in.SetValue(s.AllowanceAmount.Decimal.String())
	}

	// Drop focus from fields the new stage does not accept.
	if m.focus != fieldNone && !m.accepts(m.focus) {
		m.blur()
	}
}

func (m *OpenVaultModel) resolve() {
	if !m.hasSnap {
		return
	}
	m.dm, m.dmErr = vault.ResolveWith(m.snap, m.now, m.opts.Percent)
	if m.dmErr != nil {
		m.log.Error("resolve snapshot", zap.Error(m.dmErr))
	}
}

func (m *OpenVaultModel) logStage(from, to vault.Stage, had bool) {
	level := "info"
	switch to.Step() {
	case vault.StepFailure:
		level = "error"
	case vault.StepSuccess:
		level = "success"
	}
	msg := to.String()
	if had {
		msg = from.String() + " → " + to.String()
	}
	if to == vault.StageOpenSuccess && m.snap.ID != "" {
		msg += fmt.Sprintf(" (vault #%s)", m.snap.ID)
	}
	m.addLog(level, strings.ToLower(to.Phase().String()), msg)
}

func (m *OpenVaultModel) applyMarket(u feed.MarketUpdate) {
	if u.Err != nil {
		m.addLog("warn", "market", "reload failed: "+u.Err.Error())
		return
	}
	price := u.Market.PriceInfo.CurrentCollateralPrice
	m.history = append(m.history, price.InexactFloat64())
	if len(m.history) > 64 {
		m.history = m.history[len(m.history)-64:]
	}
	if m.opts.Controller != nil {
		m.opts.Controller.UpdateMarket(u.Market)
	}
	m.addLog("info", "market", "price "+format.USD(price))
}

func (m *OpenVaultModel) addLog(level, source, message string) {
	m.logs.AddLine(components.LogLine{Time: m.now, Level: level, Source: source, Message: message})
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m OpenVaultModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.quit != nil {
		d, _ := m.quit.Update(msg)
		if d.Done {
			m.quit = nil
			if d.Confirmed {
				return m, tea.Quit
			}
			return m, nil
		}
		m.quit = &d
		return m, nil
	}

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.explaining != vault.ExplainNone {
		if key == "esc" || key == "?" || key == "q" || key == "b" {
			m.explaining = vault.ExplainNone
		}
		return m, nil
	}

	if m.focus != fieldNone {
		return m.handleInputKey(msg)
	}

	switch key {
	case "q", "esc":
		if m.snap.Stage == vault.StageOpenSuccess || !m.hasSnap {
			return m, tea.Quit
		}
		d := components.NewConfirmDialog("Quit?", "The vault has not been opened yet.")
		m.quit = &d
	case "v":
		m.tab = (m.tab + 1) % len(tabNames)
	case "tab":
		if m.tab == tabOpen && m.focusFirst() {
			return m, textinput.Blink
		}
		m.tab = (m.tab + 1) % len(tabNames)
	case "?":
		m.explaining = m.selectedExplainer()
	case "b":
		m.explaining = vault.ExplainBuyingPower
	case "up", "k":
		if m.tab == tabDetails {
			m.card = max(m.card-1, 0)
		} else {
			m.logs, _ = m.logs.Update(msg)
		}
	case "down", "j":
		if m.tab == tabDetails {
			m.card = min(m.card+1, len(components.OrderedCards(m.dm.Cards))-1)
		} else {
			m.logs, _ = m.logs.Update(msg)
		}
	case "G":
		m.logs, _ = m.logs.Update(msg)
	case "enter":
		m.activatePrimary()
		if m.navigated != "" {
			return m, tea.Quit
		}
	case "backspace":
		m.report("regress", vault.ActivateSecondary(m.snap))
	case "p":
		m.report("create proxy", vault.ActivateCreateProxy(m.snap))
	case "s":
		return m, m.saveSnapshot()
	}
	return m, nil
}

func (m OpenVaultModel) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.blur()
		return m, nil
	case "tab":
		m.cycleFocus(1)
		return m, textinput.Blink
	case "shift+tab":
		m.cycleFocus(-1)
		return m, textinput.Blink
	}

	in := m.inputs[m.focus]
	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if in.Value() != before {
		m.commit(m.focus)
	}
	return m, cmd
}

// commit parses field f and forwards it to the controller.
func (m *OpenVaultModel) commit(f field) {
	v, err := parseAmount(m.inputs[f].Value())
	m.inputErr[f] = err
	if m.opts.Controller == nil {
		return
	}
	switch f {
	case fieldDeposit:
		m.opts.Controller.SetDeposit(v)
	case fieldGenerate:
		m.opts.Controller.SetGenerate(v)
	case fieldAllowance:
		m.opts.Controller.SetAllowance(v)
	}
}

func (m *OpenVaultModel) accepts(f field) bool {
	for _, e := range editableFields(m.snap.Stage) {
		if e == f {
			return true
		}
	}
	return false
}

func (m *OpenVaultModel) focusFirst() bool {
	fields := editableFields(m.snap.Stage)
	if !m.hasSnap || len(fields) == 0 {
		return false
	}
	m.setFocus(fields[0])
	return true
}

func (m *OpenVaultModel) cycleFocus(delta int) {
	fields := editableFields(m.snap.Stage)
	if len(fields) == 0 {
		m.blur()
		return
	}
	i := 0
	for j, f := range fields {
		if f == m.focus {
			i = j
		}
	}
	i = (i + delta + len(fields)) % len(fields)
	m.setFocus(fields[i])
}

func (m *OpenVaultModel) setFocus(f field) {
	m.blur()
	m.focus = f
	m.inputs[f].Focus()
}

func (m *OpenVaultModel) blur() {
	if in, ok := m.inputs[m.focus]; ok {
		in.Blur()
	}
	m.focus = fieldNone
}

func (m *OpenVaultModel) selectedExplainer() vault.Explainer {
	if m.tab == tabDetails && m.card >= 0 {
		cards := components.OrderedCards(m.dm.Cards)
		if m.card < len(cards) {
			return cards[m.card].Explainer
		}
	}
	if m.snap.Stage.Phase() == vault.PhaseEditing && !m.snap.InputAmountsEmpty {
		return vault.ExplainCollateralizationRatio
	}
	return vault.ExplainLiquidationPrice
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (m *OpenVaultModel) activatePrimary() {
	var path string
	nav := vault.NavigatorFunc(func(p string) { path = p })
	err := vault.ActivatePrimary(m.snap, nav)
	if path != "" {
		m.navigated = path
		if m.opts.Navigator != nil {
			m.opts.Navigator.GoToPath(path)
		}
	}
	label := m.dm.Buttons.Primary.Label.String()
	if errors.Is(err, vault.ErrProgressDisabled) && len(m.snap.Errors) > 0 {
		err = fmt.Errorf("%w: %s", err, strings.Join(m.snap.Errors, "; "))
	}
	m.report(label, err)
}

func (m *OpenVaultModel) report(action string, err error) {
	if err == nil {
		m.log.Debug("action", zap.String("action", action), zap.Stringer("stage", m.snap.Stage))
		return
	}
	m.log.Warn("action rejected", zap.String("action", action), zap.Stringer("stage", m.snap.Stage), zap.Error(err))
	m.addLog("warn", "action", strings.ToLower(action)+": "+err.Error())
}

// saveSnapshot writes the current snapshot as indented JSON.
func (m OpenVaultModel) saveSnapshot() tea.Cmd {
	if !m.hasSnap {
		return nil
	}
	snap, dir, now := m.snap, m.opts.SnapshotDir, m.now
	return func() tea.Msg {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return savedMsg{err: fmt.Errorf("encoding snapshot: %w", err)}
		}
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return savedMsg{err: fmt.Errorf("creating %s: %w", dir, err)}
		}
		name := fmt.Sprintf("%s-%s-%d.json", strings.ToLower(snap.Ilk), snap.Stage, now.Unix())
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return savedMsg{err: fmt.Errorf("writing %s: %w", path, err)}
		}
		return savedMsg{path: path}
	}
}
