// Package session simulates the pipeline behind the open-vault wizard. It
// owns the wizard state, applies user actions, drives transactions through
// a Chain and publishes immutable snapshots.
package session

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Dallionking/vaultdesk/internal/feed"
	"github.com/Dallionking/vaultdesk/internal/vat"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// ErrAlreadyRun is returned by Run when called twice.
var ErrAlreadyRun = errors.New("session: already run")

// Options configures a Session.
type Options struct {
	Market feed.Market
	Owner  common.Address
	// ProxyAddress is an existing proxy; the zero address means none.
	ProxyAddress common.Address
	Allowance    decimal.Decimal
	Chain        Chain
	Log          *zap.Logger
}

// Session is the single owner of wizard state. All mutation happens on the
// goroutine running Run; other goroutines talk to it through commands.
type Session struct {
	cmds chan func(*state)
	done chan struct{}
	out  *feed.Latest[vault.Snapshot]

	chain Chain
	log   *zap.Logger
	st    *state
}

type state struct {
	stage     vault.Stage
	market    feed.Market
	in        inputs
	owner     common.Address
	proxy     common.Address
	allowance decimal.Decimal
	vaultID   string
	setupDone bool // proxy or allowance was set up during this session

	// opened holds the figures at the time the vault was opened and urn
	// the position the chain reported for it.
	opened *figures
	urn    vat.Urn
	events <-chan TxEvent
	submit func(TxRequest)
}

// New creates a session in the editing stage.
func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	chain := opts.Chain
	if chain == nil {
		chain = NewSimChain(0, 1, nil)
	}
	return &Session{
		cmds:  make(chan func(*state), 32),
		done:  make(chan struct{}),
		out:   feed.NewLatest[vault.Snapshot](),
		chain: chain,
		log:   log.Named("session"),
		st: &state{
			stage:     vault.StageEditing,
			market:    opts.Market,
			owner:     opts.Owner,
			proxy:     opts.ProxyAddress,
			allowance: opts.Allowance,
		},
	}
}

// Snapshots yields the newest snapshot; superseded ones are dropped.
func (s *Session) Snapshots() <-chan vault.Snapshot {
	return s.out.C()
}

// Current returns the last published snapshot.
func (s *Session) Current() (vault.Snapshot, bool) {
	return s.out.Load()
}

// Run processes commands and chain events until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	st := s.st
	if st == nil {
		return ErrAlreadyRun
	}
	s.st = nil
	defer close(s.done)

	st.submit = func(req TxRequest) {
		st.events = s.chain.Submit(ctx, req)
	}
	s.publish(st)

	for {
		select {
		case <-ctx.Done():
			return nil

		case cmd := <-s.cmds:
			prev := st.stage
			cmd(st)
			s.logTransition(prev, st)
			s.publish(st)

		case ev, ok := <-st.events:
			if !ok {
				st.events = nil
				continue
			}
			prev := st.stage
			s.applyEvent(st, ev)
			s.logTransition(prev, st)
			s.publish(st)
		}
	}
}

// send queues cmd for the run loop. It is a no-op once the loop exited.
func (s *Session) send(cmd func(*state)) {
	select {
	case s.cmds <- cmd:
	case <-s.done:
	}
}

// SetDeposit sets the collateral amount. An invalid value clears it.
func (s *Session) SetDeposit(v decimal.NullDecimal) {
	s.send(func(st *state) {
		if st.stage.Phase() == vault.PhaseEditing {
			st.in.deposit = v
		}
	})
}

// SetGenerate sets the Dai amount to generate.
func (s *Session) SetGenerate(v decimal.NullDecimal) {
	s.send(func(st *state) {
		if st.stage.Phase() == vault.PhaseEditing {
			st.in.generate = v
		}
	})
}

// SetAllowance sets the custom allowance amount.
func (s *Session) SetAllowance(v decimal.NullDecimal) {
	s.send(func(st *state) {
		if st.stage == vault.StageAllowanceWaitingForConfirmation || st.stage == vault.StageAllowanceFailure {
			st.in.customAllowance = v
		}
	})
}

// UpdateMarket replaces the market data, e.g. after a price update.
func (s *Session) UpdateMarket(m feed.Market) {
	s.send(func(st *state) { st.market = m })
}

// progressFrom advances the wizard if it is still at stage.
func (s *Session) progressFrom(stage vault.Stage) {
	s.send(func(st *state) {
		if s.current(st, "progress", stage) {
			progress(st)
		}
	})
}

// regressFrom steps back if the wizard is still at stage.
func (s *Session) regressFrom(stage vault.Stage) {
	s.send(func(st *state) {
		if s.current(st, "regress", stage) {
			regress(st)
		}
	})
}

func (s *Session) createProxyFrom(stage vault.Stage) {
	s.send(func(st *state) {
		if s.current(st, "create proxy", stage) && st.stage == vault.StageProxyWaitingForConfirmation {
			submit(st, TxProxy)
		}
	})
}

// current reports whether an action issued at stage still applies.
func (s *Session) current(st *state, action string, stage vault.Stage) bool {
	if st.stage == stage {
		return true
	}
	s.log.Debug("stale action ignored",
		zap.String("action", action),
		zap.Stringer("issued", stage),
		zap.Stringer("stage", st.stage))
	return false
}

func (s *Session) publish(st *state) {
	s.out.Publish(s.snapshot(st))
}

func (s *Session) logTransition(prev vault.Stage, st *state) {
	if prev == st.stage {
		return
	}
	s.log.Info("stage changed",
		zap.Stringer("from", prev),
		zap.Stringer("to", st.stage),
		zap.String("ilk", st.market.Ilk),
		zap.String("deposit", DescribeAmount(st.in.deposit, st.market.Token)),
		zap.String("generate", DescribeAmount(st.in.generate, "DAI")))
}

func (s *Session) applyEvent(st *state, ev TxEvent) {
	switch ev.Status {
	case TxApproved:
		st.stage = inProgressStage(ev.Kind)
		s.log.Debug("transaction approved", zap.Stringer("kind", ev.Kind), zap.String("hash", ev.Hash.Hex()))
		return
	case TxFailed:
		st.events = nil
		st.stage = ev.Kind.FailureStage()
		s.log.Warn("transaction failed", zap.Stringer("kind", ev.Kind), zap.Error(ev.Err))
		return
	}

	st.events = nil
	switch ev.Kind {
	case TxProxy:
		st.proxy = ev.ProxyAddress
		st.setupDone = true
		st.stage = vault.StageProxySuccess
	case TxAllowance:
		st.allowance = positive(st.in.customAllowance)
		st.setupDone = true
		st.stage = vault.StageAllowanceSuccess
	case TxOpen:
		urn, err := ev.Urn.Decode()
		if err != nil {
			st.stage = vault.StageOpenFailure
			s.log.Warn("undecodable urn in open receipt", zap.String("vault", ev.VaultID), zap.Error(err))
			return
		}
		f := compute(st.market, st.in, st.allowance)
		st.opened = &f
		st.urn = urn
		st.vaultID = ev.VaultID
		st.stage = vault.StageOpenSuccess
		s.log.Info("vault opened",
			zap.String("vault", ev.VaultID),
			zap.String("ilk", vat.IlkName(ev.Ilk)),
			zap.String("ink", ev.Urn.Ink),
			zap.String("art", ev.Urn.Art))
	}
	s.log.Info("transaction confirmed",
		zap.Stringer("kind", ev.Kind),
		zap.String("hash", ev.Hash.Hex()),
		zap.String("vault", ev.VaultID))
}
