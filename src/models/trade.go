package models

import (
	"time"
)

type Trade struct {
	ID        int       `db:"id"`
	AccountID string    `db:"account_id"`
	Symbol    string    `db:"symbol"`
	TradeType string    `db:"trade_type"`
	Shares    float64   `db:"shares"`
	Price     float64   `db:"price"`
	Total     float64   `db:"total"`
	CreatedAt time.Time `db:"created_at"`
}
