package controllers

import (
	"context"

	"classtrade/src/utils"
)

// RefreshQuoteSnapshot fetches quotes for every symbol held by any account
// and stores the snapshot in the cache. The API reads this snapshot as a
// fallback when the live provider is down. Returns the number of symbols
// cached.
func (c *Controller) RefreshQuoteSnapshot(ctx context.Context) (int, error) {
	symbols, err := c.Accounts.DistinctSymbols(ctx)
	if err != nil {
		return 0, err
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	prices, err := c.Quotes.GetQuotes(ctx, symbols)
	if err != nil {
		return 0, err
	}

	if err := c.Cache.SetQuoteSnapshot(ctx, prices, c.CacheTTL); err != nil {
		return 0, err
	}

	utils.LoggerFromContext(ctx).Infof("refreshed quote snapshot for %d of %d symbols", len(prices), len(symbols))
	return len(prices), nil
}
