package controllers

import (
	"context"
	"time"

	"classtrade/src/clients/quotes"
	"classtrade/src/clients/sectors"
	"classtrade/src/models"
	"classtrade/src/repositories"
	"classtrade/src/schemas"
	"classtrade/src/utils"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type IController interface {
	RegisterTeacher(ctx context.Context, req *schemas.RegisterRequest) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)

	ExecuteTrade(ctx context.Context, accountID string, req *schemas.TradeRequest) (*schemas.TradeResponse, error)
	GetPortfolio(ctx context.Context, actor schemas.Identity, accountID string) (*schemas.PortfolioResponse, error)
	GetTradeHistory(ctx context.Context, accountID string, limit int) (*schemas.TradeHistoryResponse, error)
	EvaluateAchievements(ctx context.Context, accountID string) (*schemas.EvaluateAchievementsResponse, error)

	GetLeaderboard(ctx context.Context, actor schemas.Identity, scope schemas.LeaderboardScope) (*schemas.LeaderboardResponse, error)
	ExportLeaderboard(ctx context.Context, actor schemas.Identity) (*excelize.File, error)

	AddStudent(ctx context.Context, actor schemas.Identity, req *schemas.AddStudentRequest) (*schemas.StudentResponse, error)
	RemoveStudent(ctx context.Context, actor schemas.Identity, studentID string) error
	AdjustStudentCash(ctx context.Context, actor schemas.Identity, studentID string, delta float64) (*schemas.AdjustCashResponse, error)
	UpdateStudentCredentials(ctx context.Context, actor schemas.Identity, studentID, password string) error
}

// QuoteCache is the snapshot cache consulted when the live quote provider is
// unreachable. A nil cache is tolerated; degradation then goes straight to
// cost-basis valuation.
type QuoteCache interface {
	GetQuoteSnapshot(ctx context.Context) (map[string]float64, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type Controller struct {
	Accounts     repositories.AccountRepository
	Trades       repositories.TradeRepository
	Quotes       quotes.QuoteServiceClientI
	Sectors      sectors.SectorServiceClientI
	Cache        QuoteCache
	Hasher       PasswordHasher
	StartingCash float64
}

func NewController(
	accounts repositories.AccountRepository,
	trades repositories.TradeRepository,
	quoteClient quotes.QuoteServiceClientI,
	sectorClient sectors.SectorServiceClientI,
	cache QuoteCache,
	hasher PasswordHasher,
	startingCash float64,
) *Controller {
	return &Controller{
		Accounts:     accounts,
		Trades:       trades,
		Quotes:       quoteClient,
		Sectors:      sectorClient,
		Cache:        cache,
		Hasher:       hasher,
		StartingCash: startingCash,
	}
}

// quoteSnapshot fetches live quotes for the symbols and degrades on failure:
// first to the cached snapshot, then to an empty map (cost-basis valuation).
// Provider errors are never surfaced to the request.
func (c *Controller) quoteSnapshot(ctx context.Context, symbols []string) map[string]float64 {
	if len(symbols) == 0 {
		return map[string]float64{}
	}
	prices, err := c.Quotes.GetQuotes(ctx, symbols)
	if err == nil {
		return prices
	}
	logger := utils.LoggerFromContext(ctx)
	logger.Warnf("quotes unavailable, falling back to cached snapshot: %v", err)

	if c.Cache != nil {
		if cached, cacheErr := c.Cache.GetQuoteSnapshot(ctx); cacheErr == nil {
			return cached
		}
	}
	return map[string]float64{}
}

// industrySnapshot fetches industry classifications, degrading to an empty
// map so every symbol lands in the generic bucket.
func (c *Controller) industrySnapshot(ctx context.Context, symbols []string) map[string]string {
	if len(symbols) == 0 {
		return map[string]string{}
	}
	industries, err := c.Sectors.GetIndustries(ctx, symbols)
	if err != nil {
		utils.LoggerFromContext(ctx).Warnf("industry classifier unavailable: %v", err)
		return map[string]string{}
	}
	return industries
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
