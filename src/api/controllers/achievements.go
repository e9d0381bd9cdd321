package controllers

import (
	"context"

	"classtrade/src/schemas"
	"classtrade/src/services"
)

// EvaluateAchievements re-runs the badge rules for the account against the
// current market snapshot. Repeated calls on unchanged history unlock
// nothing new; the badge set only ever grows.
func (c *Controller) EvaluateAchievements(ctx context.Context, accountID string) (*schemas.EvaluateAchievementsResponse, error) {
	account, err := c.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tradeCount, err := c.Trades.CountByAccount(ctx, nil, accountID)
	if err != nil {
		return nil, err
	}

	symbols := account.Symbols()
	quotesSnap := c.quoteSnapshot(ctx, symbols)
	industries := c.industrySnapshot(ctx, symbols)

	newBadges := services.EvaluateAchievements(account, quotesSnap, services.EvalContext{
		FirstTrade: tradeCount > 0,
		Now:        nowUTC(),
		Industries: industries,
	})
	if len(newBadges) > 0 {
		if err := c.Accounts.UnlockAchievements(ctx, accountID, newBadges); err != nil {
			return nil, err
		}
		account.Achievements = append(account.Achievements, newBadges...)
	} else {
		newBadges = []string{}
	}

	return &schemas.EvaluateAchievementsResponse{
		AccountID:       accountID,
		NewAchievements: newBadges,
		Achievements:    account.Achievements,
	}, nil
}
