package models

import (
	"time"
)

// Holding is an open position in one symbol. Rows only exist while
// shares > 0; selling a position down to zero deletes the row, so a
// reopened position starts with a fresh cost basis and acquisition time.
type Holding struct {
	ID          int       `db:"id"`
	AccountID   string    `db:"account_id"`
	Symbol      string    `db:"symbol"`
	Shares      float64   `db:"shares"`
	AverageCost float64   `db:"average_cost"`
	AcquiredAt  time.Time `db:"acquired_at"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
