package models

import "time"

// Badge identifiers. The set on an account is append-only: once unlocked a
// badge is never removed.
const (
	BadgeFirstTrade          = "FIRST_TRADE"
	BadgeProfitMaker         = "PROFIT_MAKER"
	BadgePatientInvestor     = "PATIENT_INVESTOR"
	BadgeMarketMaster        = "MARKET_MASTER"
	BadgeDiversifiedInvestor = "DIVERSIFIED_INVESTOR"
)

type Achievement struct {
	ID         int       `db:"id"`
	AccountID  string    `db:"account_id"`
	Badge      string    `db:"badge"`
	UnlockedAt time.Time `db:"unlocked_at"`
}
