package repositories

import (
	"context"

	"classtrade/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TradeRepository interface {
	// CountByAccount runs inside tx when one is provided so the first-trade
	// check observes the same snapshot as the locked account row.
	CountByAccount(ctx context.Context, tx pgx.Tx, accountID string) (int64, error)
	GetByAccount(ctx context.Context, accountID string, limit int) ([]models.Trade, error)
}

type tradeRepo struct {
	db *pgxpool.Pool
}

func NewTradeRepository(db *pgxpool.Pool) TradeRepository {
	return &tradeRepo{db: db}
}

func (r *tradeRepo) CountByAccount(ctx context.Context, tx pgx.Tx, accountID string) (int64, error) {
	query := `SELECT COUNT(*) FROM trades WHERE account_id = $1`

	var count int64
	var err error
	if tx != nil {
		err = tx.QueryRow(ctx, query, accountID).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx, query, accountID).Scan(&count)
	}
	return count, err
}

func (r *tradeRepo) GetByAccount(ctx context.Context, accountID string, limit int) ([]models.Trade, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, symbol, trade_type, shares, price, total, created_at
		FROM trades
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Symbol, &t.TradeType,
			&t.Shares, &t.Price, &t.Total, &t.CreatedAt); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
