package repositories

import (
	"context"
	"errors"
	"strings"

	"classtrade/src/models"
	"classtrade/src/services"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountUpdate describes the writes to apply to a locked account aggregate:
// the new cash balance (version is bumped alongside it), at most one holding
// upsert or removal, and an optional trade history row. Everything is
// persisted inside the same transaction that holds the row lock.
type AccountUpdate struct {
	Cash          float64
	UpsertHolding *models.Holding
	RemoveSymbol  string
	Trade         *models.Trade
}

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAll(ctx context.Context) ([]*models.Account, error)
	// GetClass returns the teacher account plus every student whose
	// teacher reference points at it.
	GetClass(ctx context.Context, teacherID string) ([]*models.Account, error)
	// WithAccountForUpdate loads the account under SELECT ... FOR UPDATE,
	// invokes fn, and persists the returned update in the same transaction.
	// Concurrent callers on one account serialize on the row lock, so two
	// trades can never read the same pre-state. An error from fn rolls the
	// transaction back untouched.
	WithAccountForUpdate(ctx context.Context, id string, fn func(ctx context.Context, tx pgx.Tx, account *models.Account) (*AccountUpdate, error)) (*models.Account, error)
	UnlockAchievements(ctx context.Context, accountID string, badges []string) error
	UpdateCredentials(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	DistinctSymbols(ctx context.Context) ([]string, error)
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `id, name, email, password, role, teacher_id, cash, version, created_at, updated_at`

// NormalizeEmail canonicalizes an email for storage and lookup. Identifiers
// are compared in canonical form instead of case-insensitive matching at
// query time.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	account.Email = NormalizeEmail(account.Email)
	return r.db.QueryRow(ctx,
		`INSERT INTO accounts (id, name, email, password, role, teacher_id, cash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING version, created_at, updated_at`,
		account.ID, account.Name, account.Email, account.Password,
		account.Role, account.TeacherID, account.Cash,
	).Scan(&account.Version, &account.CreatedAt, &account.UpdatedAt)
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	err := row.Scan(&account.ID, &account.Name, &account.Email, &account.Password,
		&account.Role, &account.TeacherID, &account.Cash, &account.Version,
		&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadAggregates(ctx, []*models.Account{account}); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, NormalizeEmail(email)))
	if err != nil {
		return nil, err
	}
	if err := r.loadAggregates(ctx, []*models.Account{account}); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepo) GetAll(ctx context.Context) ([]*models.Account, error) {
	return r.getMany(ctx, `SELECT `+accountColumns+` FROM accounts`)
}

func (r *accountRepo) GetClass(ctx context.Context, teacherID string) ([]*models.Account, error) {
	return r.getMany(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 OR teacher_id = $1`, teacherID)
}

func (r *accountRepo) getMany(ctx context.Context, query string, args ...interface{}) ([]*models.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAggregates(ctx, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// loadAggregates attaches holdings and achievements to the given accounts.
func (r *accountRepo) loadAggregates(ctx context.Context, accounts []*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(accounts))
	byID := make(map[string]*models.Account, len(accounts))
	for _, account := range accounts {
		ids = append(ids, account.ID)
		byID[account.ID] = account
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, symbol, shares, average_cost, acquired_at, created_at, updated_at
		FROM holdings WHERE account_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.AccountID, &h.Symbol, &h.Shares,
			&h.AverageCost, &h.AcquiredAt, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return err
		}
		byID[h.AccountID].Holdings = append(byID[h.AccountID].Holdings, h)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	badgeRows, err := r.db.Query(ctx,
		`SELECT account_id, badge FROM achievements WHERE account_id = ANY($1) ORDER BY unlocked_at`, ids)
	if err != nil {
		return err
	}
	defer badgeRows.Close()
	for badgeRows.Next() {
		var accountID, badge string
		if err := badgeRows.Scan(&accountID, &badge); err != nil {
			return err
		}
		byID[accountID].Achievements = append(byID[accountID].Achievements, badge)
	}
	return badgeRows.Err()
}

func (r *accountRepo) WithAccountForUpdate(ctx context.Context, id string, fn func(ctx context.Context, tx pgx.Tx, account *models.Account) (*AccountUpdate, error)) (*models.Account, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	account, err := scanAccount(tx.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx,
		`SELECT id, account_id, symbol, shares, average_cost, acquired_at, created_at, updated_at
		FROM holdings WHERE account_id = $1`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.AccountID, &h.Symbol, &h.Shares,
			&h.AverageCost, &h.AcquiredAt, &h.CreatedAt, &h.UpdatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		account.Holdings = append(account.Holdings, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	badgeRows, err := tx.Query(ctx,
		`SELECT badge FROM achievements WHERE account_id = $1 ORDER BY unlocked_at`, id)
	if err != nil {
		return nil, err
	}
	for badgeRows.Next() {
		var badge string
		if err := badgeRows.Scan(&badge); err != nil {
			badgeRows.Close()
			return nil, err
		}
		account.Achievements = append(account.Achievements, badge)
	}
	badgeRows.Close()
	if err := badgeRows.Err(); err != nil {
		return nil, err
	}

	update, err := fn(ctx, tx, account)
	if err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx,
		`UPDATE accounts SET cash = $2, version = version + 1, updated_at = now()
		WHERE id = $1 RETURNING version`,
		id, update.Cash,
	).Scan(&account.Version); err != nil {
		return nil, err
	}
	account.Cash = update.Cash

	if update.RemoveSymbol != "" {
		if _, err := tx.Exec(ctx,
			`DELETE FROM holdings WHERE account_id = $1 AND symbol = $2`,
			id, update.RemoveSymbol); err != nil {
			return nil, err
		}
	}
	if update.UpsertHolding != nil {
		h := update.UpsertHolding
		if err := tx.QueryRow(ctx,
			`INSERT INTO holdings (account_id, symbol, shares, average_cost, acquired_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (account_id, symbol) DO UPDATE SET
				shares = EXCLUDED.shares,
				average_cost = EXCLUDED.average_cost,
				updated_at = now()
			RETURNING id`,
			h.AccountID, h.Symbol, h.Shares, h.AverageCost, h.AcquiredAt,
		).Scan(&h.ID); err != nil {
			return nil, err
		}
	}
	if update.Trade != nil {
		t := update.Trade
		if err := tx.QueryRow(ctx,
			`INSERT INTO trades (account_id, symbol, trade_type, shares, price, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			t.AccountID, t.Symbol, t.TradeType, t.Shares, t.Price, t.Total,
		).Scan(&t.ID, &t.CreatedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *accountRepo) UnlockAchievements(ctx context.Context, accountID string, badges []string) error {
	for _, badge := range badges {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO achievements (account_id, badge)
			VALUES ($1, $2)
			ON CONFLICT (account_id, badge) DO NOTHING`,
			accountID, badge); err != nil {
			return err
		}
	}
	return nil
}

func (r *accountRepo) UpdateCredentials(ctx context.Context, id, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET password = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return services.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepo) DistinctSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT symbol FROM holdings ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}
