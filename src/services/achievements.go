package services

import (
	"time"

	"classtrade/src/models"
)

const (
	// FallbackIndustry is the bucket for symbols the classifier cannot
	// resolve. Unclassified symbols all share this one bucket, so a
	// classifier outage makes diversification harder to reach, never easier.
	FallbackIndustry = "Other"

	marketMasterThreshold    = 125000.0
	patientInvestorAge       = 30 * 24 * time.Hour
	diversifiedMinSymbols    = 3
	diversifiedMinIndustries = 3
)

// EvalContext carries the trade-time triggers and external lookups the badge
// rules need beyond the account state itself.
type EvalContext struct {
	// FirstTrade is true when the account has at least one applied trade.
	FirstTrade bool
	// ProfitableSell is true when the triggering trade was a sell strictly
	// above the holding's average cost.
	ProfitableSell bool
	Now            time.Time
	// Industries maps held symbols to their industry; missing symbols fall
	// back to FallbackIndustry.
	Industries map[string]string
}

// EvaluateAchievements returns the badges the account newly qualifies for.
// It is idempotent: already-unlocked badges are never returned again and
// never removed, so repeated evaluation over non-decreasing history only
// grows the set.
func EvaluateAchievements(account *models.Account, quotes map[string]float64, evalCtx EvalContext) []string {
	var unlocked []string

	award := func(badge string, qualifies bool) {
		if qualifies && !account.HasAchievement(badge) {
			unlocked = append(unlocked, badge)
		}
	}

	award(models.BadgeFirstTrade, evalCtx.FirstTrade)
	award(models.BadgeProfitMaker, evalCtx.ProfitableSell)
	award(models.BadgePatientInvestor, hasPatientHolding(account, evalCtx.Now))
	award(models.BadgeMarketMaster, TotalValue(account, quotes) >= marketMasterThreshold)
	award(models.BadgeDiversifiedInvestor, isDiversified(account, evalCtx.Industries))

	return unlocked
}

func hasPatientHolding(account *models.Account, now time.Time) bool {
	for _, h := range account.Holdings {
		if now.Sub(h.AcquiredAt) > patientInvestorAge {
			return true
		}
	}
	return false
}

func isDiversified(account *models.Account, industries map[string]string) bool {
	if len(account.Holdings) < diversifiedMinSymbols {
		return false
	}
	distinct := make(map[string]struct{}, len(account.Holdings))
	for _, h := range account.Holdings {
		industry, ok := industries[h.Symbol]
		if !ok || industry == "" {
			industry = FallbackIndustry
		}
		distinct[industry] = struct{}{}
	}
	return len(distinct) >= diversifiedMinIndustries
}
