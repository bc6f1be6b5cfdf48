package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"

	"github.com/Dallionking/vaultdesk/internal/vat"
	"github.com/Dallionking/vaultdesk/internal/vault"
)

// TxKind is the transaction a wizard phase submits.
type TxKind int

const (
	TxProxy TxKind = iota
	TxAllowance
	TxOpen
)

// String returns the lowercase kind name.
func (k TxKind) String() string {
	switch k {
	case TxProxy:
		return "proxy"
	case TxAllowance:
		return "allowance"
	case TxOpen:
		return "open"
	default:
		return fmt.Sprintf("TxKind(%d)", int(k))
	}
}

// FailureStage is the wizard stage reached when a transaction of kind k
// fails.
func (k TxKind) FailureStage() vault.Stage {
	switch k {
	case TxProxy:
		return vault.StageProxyFailure
	case TxAllowance:
		return vault.StageAllowanceFailure
	default:
		return vault.StageOpenFailure
	}
}

// TxRequest is a transaction handed to the chain.
type TxRequest struct {
	Kind   TxKind
	Owner  common.Address
	Amount decimal.Decimal // allowance amount or deposit

	// Open transactions only.
	Ilk  string
	Debt decimal.Decimal // Dai to generate
	Rate decimal.Decimal // ilk debt scaling factor
}

// TxStatus is the progress of a submitted transaction.
type TxStatus int

const (
	// TxApproved means the wallet signed and the transaction is in flight.
	TxApproved TxStatus = iota
	TxSucceeded
	TxFailed
)

// TxEvent reports progress of one submitted transaction.
type TxEvent struct {
	Kind   TxKind
	Status TxStatus
	Hash   common.Hash

	ProxyAddress common.Address // set on a successful proxy transaction

	// Set on a successful open transaction.
	VaultID string
	Ilk     common.Hash // bytes32 ilk of the new urn
	Urn     vat.RawUrn

	Err error
}

// Chain accepts wizard transactions. The returned channel yields
// TxApproved then exactly one of TxSucceeded or TxFailed, and is closed
// afterwards or when ctx is done.
type Chain interface {
	Submit(ctx context.Context, req TxRequest) <-chan TxEvent
}

// SimChain is an in-memory Chain. Each transaction takes Delay, split
// evenly between wallet approval and confirmation.
type SimChain struct {
	Delay time.Duration

	mu          sync.Mutex
	failOnce    map[TxKind]bool
	nextVaultID int
	nonce       uint64
}

// NewSimChain returns a chain that fails the first transaction of every
// phase whose failure stage is listed in failStages.
func NewSimChain(delay time.Duration, firstVaultID int, failStages []vault.Stage) *SimChain {
	c := &SimChain{
		Delay:       delay,
		failOnce:    make(map[TxKind]bool),
		nextVaultID: firstVaultID,
	}
	for _, s := range failStages {
		for _, k := range []TxKind{TxProxy, TxAllowance, TxOpen} {
			if k.FailureStage() == s {
				c.failOnce[k] = true
			}
		}
	}
	return c
}

// Submit implements Chain.
func (c *SimChain) Submit(ctx context.Context, req TxRequest) <-chan TxEvent {
	out := make(chan TxEvent, 2)

	c.mu.Lock()
	c.nonce++
	hash := crypto.Keccak256Hash(req.Owner.Bytes(), []byte(req.Kind.String()), []byte(strconv.FormatUint(c.nonce, 10)))
	fail := c.failOnce[req.Kind]
	delete(c.failOnce, req.Kind)
	result := TxEvent{Kind: req.Kind, Status: TxSucceeded, Hash: hash}
	switch {
	case fail:
		result.Status = TxFailed
		result.Err = fmt.Errorf("%s transaction reverted", req.Kind)
	case req.Kind == TxProxy:
		result.ProxyAddress = crypto.CreateAddress(req.Owner, c.nonce)
	case req.Kind == TxOpen:
		if result.Ilk, result.Urn, result.Err = openUrn(req); result.Err != nil {
			result.Status = TxFailed
			break
		}
		result.VaultID = strconv.Itoa(c.nextVaultID)
		c.nextVaultID++
	}
	c.mu.Unlock()

	go func() {
		defer close(out)
		half := c.Delay / 2
		if !sleep(ctx, half) {
			return
		}
		out <- TxEvent{Kind: req.Kind, Status: TxApproved, Hash: hash}
		if !sleep(ctx, c.Delay-half) {
			return
		}
		out <- result
	}()
	return out
}

// openUrn is the vat.urns entry of a freshly opened vault: ink is the
// deposit and art the generated Dai divided by the rate.
func openUrn(req TxRequest) (common.Hash, vat.RawUrn, error) {
	key, err := vat.IlkKey(req.Ilk)
	if err != nil {
		return common.Hash{}, vat.RawUrn{}, fmt.Errorf("open transaction reverted: %w", err)
	}
	rate := req.Rate
	if !rate.IsPositive() {
		rate = decimal.NewFromInt(1)
	}
	return key, vat.RawUrn{
		Ink: vat.FormatWad(req.Amount),
		Art: vat.FormatWad(req.Debt.Div(rate)),
	}, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
