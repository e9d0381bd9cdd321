package controllers_test

import (
	"context"
	"testing"

	"classtrade/src/models"
	"classtrade/src/schemas"
	"classtrade/src/services"
	"classtrade/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStudent(store *fakeStore, id string, cash float64) *models.Account {
	teacherID := "teacher-1"
	account := &models.Account{
		ID:        id,
		Name:      "Student " + id,
		Email:     id + "@school.test",
		Password:  "hashed:secret",
		Role:      models.RoleStudent,
		TeacherID: &teacherID,
		Cash:      cash,
		Version:   1,
	}
	store.accounts[id] = cloneAccount(account)
	return account
}

func TestExecuteTrade(t *testing.T) {
	ctx := context.Background()

	t.Run("buy then average up then liquidate", func(t *testing.T) {
		store := newFakeStore()
		seedStudent(store, "s1", 100000)
		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)

		resp, err := controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "buy", Symbol: "aapl", Shares: 10, Price: 150,
		})
		require.NoError(t, err)
		assert.Equal(t, 98500.0, resp.Account.Cash)
		require.Len(t, resp.Account.Holdings, 1)
		assert.Equal(t, "AAPL", resp.Account.Holdings[0].Symbol)
		assert.Equal(t, 10.0, resp.Account.Holdings[0].Shares)
		assert.Equal(t, 150.0, resp.Account.Holdings[0].AverageCost)
		assert.Equal(t, []string{models.BadgeFirstTrade}, resp.NewAchievements)

		resp, err = controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "BUY", Symbol: "AAPL", Shares: 5, Price: 180,
		})
		require.NoError(t, err)
		assert.Equal(t, 97600.0, resp.Account.Cash)
		require.Len(t, resp.Account.Holdings, 1)
		assert.Equal(t, 15.0, resp.Account.Holdings[0].Shares)
		assert.Equal(t, 160.0, resp.Account.Holdings[0].AverageCost)
		assert.Empty(t, resp.NewAchievements)

		resp, err = controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "SELL", Symbol: "AAPL", Shares: 15, Price: 200,
		})
		require.NoError(t, err)
		assert.Equal(t, 100600.0, resp.Account.Cash)
		assert.Empty(t, resp.Account.Holdings)
		assert.Equal(t, []string{models.BadgeProfitMaker}, resp.NewAchievements)

		history, err := controller.GetTradeHistory(ctx, "s1", 0)
		require.NoError(t, err)
		require.Len(t, history.Trades, 3)
		// Most recent first.
		assert.Equal(t, "SELL", history.Trades[0].TradeType)
		assert.Equal(t, 3000.0, history.Trades[0].Total)
		assert.Equal(t, "BUY", history.Trades[2].TradeType)
	})

	t.Run("insufficient funds leaves state untouched", func(t *testing.T) {
		store := newFakeStore()
		seedStudent(store, "s1", 1000)
		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)

		_, err := controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "BUY", Symbol: "AAPL", Shares: 10, Price: 150,
		})
		assert.ErrorIs(t, err, services.ErrInsufficientFunds)

		stored, err := store.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 1000.0, stored.Cash)
		assert.Empty(t, stored.Holdings)
		assert.Empty(t, store.trades["s1"])
	})

	t.Run("overselling leaves state untouched", func(t *testing.T) {
		store := newFakeStore()
		account := seedStudent(store, "s1", 1000)
		account.Holdings = []models.Holding{{AccountID: "s1", Symbol: "AAPL", Shares: 5, AverageCost: 100}}
		store.accounts["s1"] = account

		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)
		_, err := controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "SELL", Symbol: "AAPL", Shares: 6, Price: 100,
		})
		assert.ErrorIs(t, err, services.ErrInsufficientShares)

		stored, err := store.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 5.0, stored.Holdings[0].Shares)
	})

	t.Run("rejects malformed orders", func(t *testing.T) {
		store := newFakeStore()
		seedStudent(store, "s1", 1000)
		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)

		cases := []schemas.TradeRequest{
			{Type: "BUY", Symbol: "", Shares: 1, Price: 1},
			{Type: "BUY", Symbol: "AAPL", Shares: 0, Price: 1},
			{Type: "BUY", Symbol: "AAPL", Shares: 1, Price: -1},
		}
		for _, req := range cases {
			_, err := controller.ExecuteTrade(ctx, "s1", &req)
			var httpErr *utils.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, 400, httpErr.Code)
		}

		_, err := controller.ExecuteTrade(ctx, "s1", &schemas.TradeRequest{
			Type: "SHORT", Symbol: "AAPL", Shares: 1, Price: 1,
		})
		assert.ErrorIs(t, err, services.ErrInvalidOrderType)
	})

	t.Run("unknown account", func(t *testing.T) {
		store := newFakeStore()
		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)
		_, err := controller.ExecuteTrade(ctx, "ghost", &schemas.TradeRequest{
			Type: "BUY", Symbol: "AAPL", Shares: 1, Price: 1,
		})
		assert.ErrorIs(t, err, services.ErrAccountNotFound)
	})
}

func TestGetPortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("marks holdings to market", func(t *testing.T) {
		store := newFakeStore()
		account := seedStudent(store, "s1", 98500)
		account.Holdings = []models.Holding{{AccountID: "s1", Symbol: "AAPL", Shares: 10, AverageCost: 150}}
		store.accounts["s1"] = account

		quoteClient := &fakeQuoteClient{prices: map[string]float64{"AAPL": 170}}
		controller := newTestController(store, quoteClient, &fakeSectorClient{}, nil)

		actor := schemas.Identity{AccountID: "s1", Role: models.RoleStudent}
		portfolio, err := controller.GetPortfolio(ctx, actor, "")
		require.NoError(t, err)
		assert.Equal(t, 98500.0+10*170, portfolio.TotalValue)
		require.NotNil(t, portfolio.Holdings[0].MarketPrice)
		assert.Equal(t, 170.0, *portfolio.Holdings[0].MarketPrice)
	})

	t.Run("falls back to the cached snapshot when quotes fail", func(t *testing.T) {
		store := newFakeStore()
		account := seedStudent(store, "s1", 1000)
		account.Holdings = []models.Holding{{AccountID: "s1", Symbol: "AAPL", Shares: 10, AverageCost: 150}}
		store.accounts["s1"] = account

		quoteClient := &fakeQuoteClient{err: assert.AnError}
		cache := &fakeQuoteCache{snapshot: map[string]float64{"AAPL": 200}}
		controller := newTestController(store, quoteClient, &fakeSectorClient{}, cache)

		actor := schemas.Identity{AccountID: "s1", Role: models.RoleStudent}
		portfolio, err := controller.GetPortfolio(ctx, actor, "s1")
		require.NoError(t, err)
		assert.Equal(t, 1000.0+10*200, portfolio.TotalValue)
	})

	t.Run("degrades to cost basis when everything fails", func(t *testing.T) {
		store := newFakeStore()
		account := seedStudent(store, "s1", 1000)
		account.Holdings = []models.Holding{{AccountID: "s1", Symbol: "AAPL", Shares: 10, AverageCost: 150}}
		store.accounts["s1"] = account

		controller := newTestController(store, &fakeQuoteClient{err: assert.AnError}, &fakeSectorClient{}, nil)
		actor := schemas.Identity{AccountID: "s1", Role: models.RoleStudent}
		portfolio, err := controller.GetPortfolio(ctx, actor, "s1")
		require.NoError(t, err)
		assert.Equal(t, 1000.0+10*150, portfolio.TotalValue)
		assert.Nil(t, portfolio.Holdings[0].MarketPrice)
	})

	t.Run("teachers read their own students only", func(t *testing.T) {
		store := newFakeStore()
		seedStudent(store, "s1", 1000)
		store.accounts["teacher-1"] = &models.Account{ID: "teacher-1", Role: models.RoleTeacher, Cash: 1}
		store.accounts["teacher-2"] = &models.Account{ID: "teacher-2", Role: models.RoleTeacher, Cash: 1}

		controller := newTestController(store, &fakeQuoteClient{}, &fakeSectorClient{}, nil)

		owner := schemas.Identity{AccountID: "teacher-1", Role: models.RoleTeacher}
		_, err := controller.GetPortfolio(ctx, owner, "s1")
		assert.NoError(t, err)

		stranger := schemas.Identity{AccountID: "teacher-2", Role: models.RoleTeacher}
		_, err = controller.GetPortfolio(ctx, stranger, "s1")
		assert.ErrorIs(t, err, services.ErrUnauthorizedRoster)
	})
}
