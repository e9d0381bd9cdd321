package services

import "classtrade/src/models"

// MarketValue values one holding against the quote snapshot, falling back to
// its cost basis when the symbol has no quote.
func MarketValue(h models.Holding, quotes map[string]float64) float64 {
	if price, ok := quotes[h.Symbol]; ok {
		return h.Shares * price
	}
	return h.Shares * h.AverageCost
}

// TotalValue is the mark-to-market worth of the account: cash plus every
// holding valued by MarketValue. It never fails; a partial or empty quote
// snapshot degrades the affected holdings to cost-basis valuation.
func TotalValue(account *models.Account, quotes map[string]float64) float64 {
	total := account.Cash
	for _, h := range account.Holdings {
		total += MarketValue(h, quotes)
	}
	return total
}
