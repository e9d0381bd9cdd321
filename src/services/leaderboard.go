package services

import (
	"sort"

	"classtrade/src/models"
)

type RankedAccount struct {
	Account    *models.Account
	TotalValue float64
}

// Rank orders the accounts descending by total mark-to-market value.
// Ties break ascending by account ID, so the ordering is a deterministic
// total order and re-running on unchanged input yields the same result.
func Rank(accounts []*models.Account, quotes map[string]float64) []RankedAccount {
	ranked := make([]RankedAccount, 0, len(accounts))
	for _, account := range accounts {
		ranked = append(ranked, RankedAccount{
			Account:    account,
			TotalValue: TotalValue(account, quotes),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalValue != ranked[j].TotalValue {
			return ranked[i].TotalValue > ranked[j].TotalValue
		}
		return ranked[i].Account.ID < ranked[j].Account.ID
	})
	return ranked
}
