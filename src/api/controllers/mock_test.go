package controllers_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"classtrade/src/api/controllers"
	"classtrade/src/models"
	"classtrade/src/repositories"
	"classtrade/src/services"

	"github.com/jackc/pgx/v5"
)

const testStartingCash = 100000.0

func newTestController(store *fakeStore, quoteClient *fakeQuoteClient, sectorClient *fakeSectorClient, cache controllers.QuoteCache) *controllers.Controller {
	return controllers.NewController(store, store, quoteClient, sectorClient, cache, plainHasher{}, testStartingCash)
}

// fakeStore is an in-memory stand-in for the account and trade repositories.
// WithAccountForUpdate applies updates synchronously; tests exercising the
// controller do not need real row locking.
type fakeStore struct {
	accounts map[string]*models.Account
	trades   map[string][]models.Trade
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[string]*models.Account),
		trades:   make(map[string][]models.Trade),
	}
}

func cloneAccount(account *models.Account) *models.Account {
	clone := *account
	clone.Holdings = append([]models.Holding(nil), account.Holdings...)
	clone.Achievements = append([]string(nil), account.Achievements...)
	return &clone
}

func (s *fakeStore) Create(_ context.Context, account *models.Account) error {
	account.Email = repositories.NormalizeEmail(account.Email)
	account.Version = 1
	s.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.Account, error) {
	account, ok := s.accounts[id]
	if !ok {
		return nil, services.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	email = repositories.NormalizeEmail(email)
	for _, account := range s.accounts {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}
	return nil, services.ErrAccountNotFound
}

func (s *fakeStore) GetAll(_ context.Context) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, cloneAccount(account))
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (s *fakeStore) GetClass(_ context.Context, teacherID string) ([]*models.Account, error) {
	var accounts []*models.Account
	for _, account := range s.accounts {
		if account.ID == teacherID || (account.TeacherID != nil && *account.TeacherID == teacherID) {
			accounts = append(accounts, cloneAccount(account))
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (s *fakeStore) WithAccountForUpdate(ctx context.Context, id string, fn func(ctx context.Context, tx pgx.Tx, account *models.Account) (*repositories.AccountUpdate, error)) (*models.Account, error) {
	stored, ok := s.accounts[id]
	if !ok {
		return nil, services.ErrAccountNotFound
	}
	account := cloneAccount(stored)
	update, err := fn(ctx, nil, account)
	if err != nil {
		return nil, err
	}
	account.Cash = update.Cash
	account.Version++
	if update.Trade != nil {
		update.Trade.CreatedAt = time.Now().UTC()
		s.trades[id] = append(s.trades[id], *update.Trade)
	}
	s.accounts[id] = cloneAccount(account)
	return account, nil
}

func (s *fakeStore) UnlockAchievements(_ context.Context, accountID string, badges []string) error {
	account, ok := s.accounts[accountID]
	if !ok {
		return services.ErrAccountNotFound
	}
	for _, badge := range badges {
		if !account.HasAchievement(badge) {
			account.Achievements = append(account.Achievements, badge)
		}
	}
	return nil
}

func (s *fakeStore) UpdateCredentials(_ context.Context, id, passwordHash string) error {
	account, ok := s.accounts[id]
	if !ok {
		return services.ErrAccountNotFound
	}
	account.Password = passwordHash
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.accounts[id]; !ok {
		return services.ErrAccountNotFound
	}
	delete(s.accounts, id)
	delete(s.trades, id)
	return nil
}

func (s *fakeStore) DistinctSymbols(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, account := range s.accounts {
		for _, h := range account.Holdings {
			seen[h.Symbol] = struct{}{}
		}
	}
	symbols := make([]string, 0, len(seen))
	for symbol := range seen {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (s *fakeStore) CountByAccount(_ context.Context, _ pgx.Tx, accountID string) (int64, error) {
	return int64(len(s.trades[accountID])), nil
}

func (s *fakeStore) GetByAccount(_ context.Context, accountID string, limit int) ([]models.Trade, error) {
	trades := s.trades[accountID]
	result := make([]models.Trade, 0, limit)
	for i := len(trades) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, trades[i])
	}
	return result, nil
}

type fakeQuoteClient struct {
	prices map[string]float64
	err    error
}

func (c *fakeQuoteClient) GetQuotes(_ context.Context, symbols []string) (map[string]float64, error) {
	if c.err != nil {
		return nil, c.err
	}
	result := make(map[string]float64)
	for _, symbol := range symbols {
		if price, ok := c.prices[symbol]; ok {
			result[symbol] = price
		}
	}
	return result, nil
}

type fakeSectorClient struct {
	industries map[string]string
	err        error
}

func (c *fakeSectorClient) GetIndustries(_ context.Context, symbols []string) (map[string]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	result := make(map[string]string)
	for _, symbol := range symbols {
		if industry, ok := c.industries[symbol]; ok {
			result[symbol] = industry
		}
	}
	return result, nil
}

type fakeQuoteCache struct {
	snapshot map[string]float64
}

func (c *fakeQuoteCache) GetQuoteSnapshot(_ context.Context) (map[string]float64, error) {
	if c.snapshot == nil {
		return nil, fmt.Errorf("key does not exist")
	}
	return c.snapshot, nil
}

// plainHasher keeps controller tests fast; bcrypt is exercised in production
// wiring only.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("credentials mismatch")
	}
	return nil
}
