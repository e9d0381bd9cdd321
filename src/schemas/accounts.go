package schemas

import (
	"time"

	"classtrade/src/models"
)

// Identity is the authenticated caller extracted from the session token.
// Credential verification happens upstream; the core trusts this pair.
type Identity struct {
	AccountID string
	Role      models.Role
}

type HoldingState struct {
	Symbol      string    `json:"symbol"`
	Shares      float64   `json:"shares"`
	AverageCost float64   `json:"averageCost"`
	AcquiredAt  time.Time `json:"acquiredAt"`
	// MarketPrice is nil when no quote was available and the holding was
	// valued at cost basis.
	MarketPrice *float64 `json:"marketPrice,omitempty"`
	MarketValue float64  `json:"marketValue"`
}

type PortfolioResponse struct {
	AccountID    string         `json:"accountId"`
	Name         string         `json:"name"`
	Role         models.Role    `json:"role"`
	Cash         float64        `json:"cash"`
	Holdings     []HoldingState `json:"holdings"`
	Achievements []string       `json:"achievements"`
	TotalValue   float64        `json:"totalValue"`
}
