package services_test

import (
	"testing"
	"time"

	"classtrade/src/models"
	"classtrade/src/services"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAchievements(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("first trade", func(t *testing.T) {
		account := newAccount(1000)
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{
			FirstTrade: true, Now: now,
		})
		assert.Equal(t, []string{models.BadgeFirstTrade}, badges)
	})

	t.Run("profitable sell", func(t *testing.T) {
		account := newAccount(1000)
		account.Achievements = []string{models.BadgeFirstTrade}
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{
			FirstTrade: true, ProfitableSell: true, Now: now,
		})
		assert.Equal(t, []string{models.BadgeProfitMaker}, badges)
	})

	t.Run("patient investor needs a holding older than 30 days", func(t *testing.T) {
		account := newAccount(1000)
		account.Holdings = []models.Holding{
			{Symbol: "AAPL", Shares: 1, AverageCost: 100, AcquiredAt: now.Add(-29 * 24 * time.Hour)},
		}
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{Now: now})
		assert.Empty(t, badges)

		account.Holdings[0].AcquiredAt = now.Add(-31 * 24 * time.Hour)
		badges = services.EvaluateAchievements(account, nil, services.EvalContext{Now: now})
		assert.Equal(t, []string{models.BadgePatientInvestor}, badges)
	})

	t.Run("market master at the value threshold", func(t *testing.T) {
		account := newAccount(25000)
		account.Holdings = []models.Holding{
			{Symbol: "AAPL", Shares: 100, AverageCost: 900, AcquiredAt: now},
		}
		quotes := map[string]float64{"AAPL": 1000}
		badges := services.EvaluateAchievements(account, quotes, services.EvalContext{Now: now})
		assert.Equal(t, []string{models.BadgeMarketMaster}, badges)

		// Cost-basis fallback keeps the account under the threshold.
		badges = services.EvaluateAchievements(account, nil, services.EvalContext{Now: now})
		assert.Empty(t, badges)
	})

	t.Run("diversified investor needs three industries", func(t *testing.T) {
		account := newAccount(1000)
		account.Holdings = []models.Holding{
			{Symbol: "AAPL", Shares: 1, AverageCost: 10, AcquiredAt: now},
			{Symbol: "JPM", Shares: 1, AverageCost: 10, AcquiredAt: now},
			{Symbol: "XOM", Shares: 1, AverageCost: 10, AcquiredAt: now},
		}
		industries := map[string]string{
			"AAPL": "Technology",
			"JPM":  "Financials",
			"XOM":  "Energy",
		}
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{
			Now: now, Industries: industries,
		})
		assert.Equal(t, []string{models.BadgeDiversifiedInvestor}, badges)
	})

	t.Run("unclassified symbols share one fallback bucket", func(t *testing.T) {
		account := newAccount(1000)
		account.Holdings = []models.Holding{
			{Symbol: "AAA", Shares: 1, AverageCost: 10, AcquiredAt: now},
			{Symbol: "BBB", Shares: 1, AverageCost: 10, AcquiredAt: now},
			{Symbol: "CCC", Shares: 1, AverageCost: 10, AcquiredAt: now},
		}
		// No classifications at all: three symbols but one industry.
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{Now: now})
		assert.Empty(t, badges)

		industries := map[string]string{"AAA": "Technology", "BBB": "Energy"}
		badges = services.EvaluateAchievements(account, nil, services.EvalContext{
			Now: now, Industries: industries,
		})
		assert.Equal(t, []string{models.BadgeDiversifiedInvestor}, badges)
	})

	t.Run("two symbols are never diversified", func(t *testing.T) {
		account := newAccount(1000)
		account.Holdings = []models.Holding{
			{Symbol: "AAPL", Shares: 1, AverageCost: 10, AcquiredAt: now},
			{Symbol: "JPM", Shares: 1, AverageCost: 10, AcquiredAt: now},
		}
		badges := services.EvaluateAchievements(account, nil, services.EvalContext{
			Now: now,
			Industries: map[string]string{
				"AAPL": "Technology", "JPM": "Financials",
			},
		})
		assert.Empty(t, badges)
	})

	t.Run("idempotent and monotone", func(t *testing.T) {
		account := newAccount(200000)
		evalCtx := services.EvalContext{FirstTrade: true, Now: now}

		first := services.EvaluateAchievements(account, nil, evalCtx)
		assert.ElementsMatch(t, []string{models.BadgeFirstTrade, models.BadgeMarketMaster}, first)

		account.Achievements = append(account.Achievements, first...)
		second := services.EvaluateAchievements(account, nil, evalCtx)
		assert.Empty(t, second)

		// A weaker context never removes what is already unlocked.
		third := services.EvaluateAchievements(account, nil, services.EvalContext{Now: now})
		assert.Empty(t, third)
		assert.Len(t, account.Achievements, 2)
	})
}
