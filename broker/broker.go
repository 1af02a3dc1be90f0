// Package broker defines what the engine needs from a broker: recent bars
// and immediate-settlement orders.
package broker

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/1cbyc/1cbyc-trading-bot/market"
)

var (
	ErrUnknownSymbol = errors.New("unknown symbol")
	ErrInvalidStake  = errors.New("invalid stake")
	ErrNoDirection   = errors.New("order has no direction")
)

type Broker interface {
	// FetchRecentBars returns up to count closed bars, oldest first.
	FetchRecentBars(ctx context.Context, symbol string, count int) ([]market.Bar, error)
	// SubmitOrder places a short-duration contract and returns its settled
	// outcome.
	SubmitOrder(ctx context.Context, req OrderRequest) (market.TradeOutcome, error)
}

// AccountReader is implemented by brokers that can report the account.
type AccountReader interface {
	GetAccount(ctx context.Context) (Account, error)
}

type Account struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

type OrderRequest struct {
	Symbol    string
	Direction market.Direction
	Stake     float64
}

func (r OrderRequest) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("%w: empty symbol", ErrUnknownSymbol)
	}
	if r.Direction == market.Flat {
		return ErrNoDirection
	}
	if r.Stake <= 0 || math.IsNaN(r.Stake) || math.IsInf(r.Stake, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStake, r.Stake)
	}
	return nil
}

// FromProposal builds the order for a sized proposal.
func FromProposal(p market.TradeProposal) OrderRequest {
	return OrderRequest{Symbol: p.Symbol, Direction: p.Direction, Stake: p.Stake}
}
