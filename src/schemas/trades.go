package schemas

import "time"

type TradeRequest struct {
	Type   string  `json:"type"`
	Symbol string  `json:"symbol"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
}

type TradeResponse struct {
	Account         *PortfolioResponse `json:"account"`
	NewAchievements []string           `json:"newAchievements"`
}

type TradeRecord struct {
	Symbol    string    `json:"symbol"`
	TradeType string    `json:"tradeType"`
	Shares    float64   `json:"shares"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type TradeHistoryResponse struct {
	AccountID string        `json:"accountId"`
	Trades    []TradeRecord `json:"trades"`
}
