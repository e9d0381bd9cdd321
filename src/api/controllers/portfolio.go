package controllers

import (
	"context"

	"classtrade/src/models"
	"classtrade/src/schemas"
	"classtrade/src/services"
)

// GetPortfolio returns the valued portfolio for accountID. Callers may
// always read their own portfolio; teachers may additionally read students
// on their roster.
func (c *Controller) GetPortfolio(ctx context.Context, actor schemas.Identity, accountID string) (*schemas.PortfolioResponse, error) {
	if accountID == "" {
		accountID = actor.AccountID
	}

	account, err := c.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if accountID != actor.AccountID {
		if err := services.AuthorizeRoster(actor.AccountID, actor.Role, account); err != nil {
			return nil, err
		}
	}

	quotesSnap := c.quoteSnapshot(ctx, account.Symbols())
	return buildPortfolio(account, quotesSnap), nil
}

func (c *Controller) GetTradeHistory(ctx context.Context, accountID string, limit int) (*schemas.TradeHistoryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	trades, err := c.Trades.GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	records := make([]schemas.TradeRecord, 0, len(trades))
	for _, t := range trades {
		records = append(records, schemas.TradeRecord{
			Symbol:    t.Symbol,
			TradeType: t.TradeType,
			Shares:    t.Shares,
			Price:     t.Price,
			Total:     t.Total,
			CreatedAt: t.CreatedAt,
		})
	}
	return &schemas.TradeHistoryResponse{AccountID: accountID, Trades: records}, nil
}

func buildPortfolio(account *models.Account, quotesSnap map[string]float64) *schemas.PortfolioResponse {
	holdings := make([]schemas.HoldingState, 0, len(account.Holdings))
	for _, h := range account.Holdings {
		state := schemas.HoldingState{
			Symbol:      h.Symbol,
			Shares:      h.Shares,
			AverageCost: h.AverageCost,
			AcquiredAt:  h.AcquiredAt,
			MarketValue: services.MarketValue(h, quotesSnap),
		}
		if price, ok := quotesSnap[h.Symbol]; ok {
			p := price
			state.MarketPrice = &p
		}
		holdings = append(holdings, state)
	}

	achievements := account.Achievements
	if achievements == nil {
		achievements = []string{}
	}

	return &schemas.PortfolioResponse{
		AccountID:    account.ID,
		Name:         account.Name,
		Role:         account.Role,
		Cash:         account.Cash,
		Holdings:     holdings,
		Achievements: achievements,
		TotalValue:   services.TotalValue(account, quotesSnap),
	}
}
