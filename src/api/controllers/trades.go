package controllers

import (
	"context"
	"strings"

	"classtrade/src/models"
	"classtrade/src/repositories"
	"classtrade/src/schemas"
	"classtrade/src/services"
	"classtrade/src/utils"

	"github.com/jackc/pgx/v5"
)

// ExecuteTrade applies one buy/sell order to the caller's account. The read,
// the ledger application and every resulting write happen inside a single
// row-locked transaction; achievement evaluation runs afterwards on the
// committed state with a best-effort quote snapshot.
func (c *Controller) ExecuteTrade(ctx context.Context, accountID string, req *schemas.TradeRequest) (*schemas.TradeResponse, error) {
	if req.Symbol == "" {
		return nil, utils.BadRequest("symbol is required")
	}
	if req.Shares <= 0 {
		return nil, utils.BadRequest("shares must be positive")
	}
	if req.Price <= 0 {
		return nil, utils.BadRequest("price must be positive")
	}

	order := services.Order{
		Type:   services.OrderType(strings.ToUpper(req.Type)),
		Symbol: strings.ToUpper(req.Symbol),
		Shares: req.Shares,
		Price:  req.Price,
	}

	now := nowUTC()
	var outcome *services.TradeOutcome
	var firstTrade bool

	account, err := c.Accounts.WithAccountForUpdate(ctx, accountID,
		func(ctx context.Context, tx pgx.Tx, account *models.Account) (*repositories.AccountUpdate, error) {
			prior, err := c.Trades.CountByAccount(ctx, tx, accountID)
			if err != nil {
				return nil, err
			}
			firstTrade = prior == 0

			outcome, err = services.ApplyTrade(account, order, now)
			if err != nil {
				return nil, err
			}

			update := &repositories.AccountUpdate{
				Cash: account.Cash,
				Trade: &models.Trade{
					AccountID: accountID,
					Symbol:    order.Symbol,
					TradeType: string(order.Type),
					Shares:    order.Shares,
					Price:     order.Price,
					Total:     order.Total(),
				},
			}
			if holding := account.HoldingFor(order.Symbol); holding != nil {
				update.UpsertHolding = holding
			} else {
				// Sold down to zero: the row goes away with its basis.
				update.RemoveSymbol = order.Symbol
			}
			return update, nil
		})
	if err != nil {
		return nil, err
	}

	symbols := account.Symbols()
	quotesSnap := c.quoteSnapshot(ctx, symbols)
	industries := c.industrySnapshot(ctx, symbols)

	newBadges := services.EvaluateAchievements(account, quotesSnap, services.EvalContext{
		FirstTrade:     firstTrade,
		ProfitableSell: outcome.ProfitableSell,
		Now:            now,
		Industries:     industries,
	})
	if len(newBadges) > 0 {
		if err := c.Accounts.UnlockAchievements(ctx, accountID, newBadges); err != nil {
			// The trade is committed; badges are derived and re-earned on
			// the next evaluation, so the request still succeeds.
			utils.LoggerFromContext(ctx).Errorf("failed to persist achievements for %s: %v", accountID, err)
			newBadges = nil
		} else {
			account.Achievements = append(account.Achievements, newBadges...)
		}
	}
	if newBadges == nil {
		newBadges = []string{}
	}

	return &schemas.TradeResponse{
		Account:         buildPortfolio(account, quotesSnap),
		NewAchievements: newBadges,
	}, nil
}
