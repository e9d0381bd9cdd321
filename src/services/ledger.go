package services

import (
	"time"

	"classtrade/src/models"
)

type OrderType string

const (
	OrderBuy  OrderType = "BUY"
	OrderSell OrderType = "SELL"
)

type Order struct {
	Type   OrderType
	Symbol string
	Shares float64
	Price  float64
}

func (o Order) Total() float64 {
	return o.Shares * o.Price
}

// TradeOutcome reports what the applied trade means for achievement
// evaluation. FirstTrade is determined by the caller from trade history.
type TradeOutcome struct {
	ProfitableSell bool
}

// ApplyTrade applies a buy or sell order to the account aggregate in memory.
// It either mutates cash and holdings and returns an outcome, or returns one
// of the ledger errors leaving the account untouched. Callers are responsible
// for running it under a per-account lock and persisting the result in the
// same transaction.
//
// After every successful application the solvency invariants hold:
// cash >= 0 and every holding has shares > 0.
func ApplyTrade(account *models.Account, order Order, now time.Time) (*TradeOutcome, error) {
	switch order.Type {
	case OrderBuy:
		return applyBuy(account, order, now)
	case OrderSell:
		return applySell(account, order)
	default:
		return nil, ErrInvalidOrderType
	}
}

func applyBuy(account *models.Account, order Order, now time.Time) (*TradeOutcome, error) {
	cost := order.Total()
	if cost > account.Cash {
		return nil, ErrInsufficientFunds
	}
	account.Cash -= cost

	if holding := account.HoldingFor(order.Symbol); holding != nil {
		// Weighted average over all buys since the position was opened.
		newShares := holding.Shares + order.Shares
		holding.AverageCost = (holding.Shares*holding.AverageCost + cost) / newShares
		holding.Shares = newShares
	} else {
		account.Holdings = append(account.Holdings, models.Holding{
			AccountID:   account.ID,
			Symbol:      order.Symbol,
			Shares:      order.Shares,
			AverageCost: order.Price,
			AcquiredAt:  now,
		})
	}
	return &TradeOutcome{}, nil
}

func applySell(account *models.Account, order Order) (*TradeOutcome, error) {
	holding := account.HoldingFor(order.Symbol)
	if holding == nil || holding.Shares < order.Shares {
		return nil, ErrInsufficientShares
	}

	outcome := &TradeOutcome{ProfitableSell: order.Price > holding.AverageCost}

	account.Cash += order.Total()
	holding.Shares -= order.Shares
	if holding.Shares == 0 {
		// Closing the position discards its basis; reopening the symbol
		// later starts fresh.
		account.Holdings = removeHolding(account.Holdings, order.Symbol)
	}
	return outcome, nil
}

func removeHolding(holdings []models.Holding, symbol string) []models.Holding {
	kept := holdings[:0]
	for _, h := range holdings {
		if h.Symbol != symbol {
			kept = append(kept, h)
		}
	}
	return kept
}
