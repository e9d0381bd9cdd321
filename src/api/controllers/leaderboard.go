package controllers

import (
	"context"
	"fmt"

	"classtrade/src/models"
	"classtrade/src/schemas"
	"classtrade/src/services"

	"github.com/xuri/excelize/v2"
)

// GetLeaderboard ranks the accounts in the actor's scope by total
// mark-to-market value. Class scope for a teacher covers the teacher and
// their students; for a student it covers their teacher's whole class. A
// student with no teacher sees only themself.
func (c *Controller) GetLeaderboard(ctx context.Context, actor schemas.Identity, scope schemas.LeaderboardScope) (*schemas.LeaderboardResponse, error) {
	accounts, err := c.accountsInScope(ctx, actor, scope)
	if err != nil {
		return nil, err
	}

	quotesSnap := c.quoteSnapshot(ctx, heldSymbols(accounts))
	ranked := services.Rank(accounts, quotesSnap)

	entries := make([]schemas.LeaderboardEntry, 0, len(ranked))
	for i, entry := range ranked {
		entries = append(entries, schemas.LeaderboardEntry{
			Rank:       i + 1,
			AccountID:  entry.Account.ID,
			Name:       entry.Account.Name,
			Role:       entry.Account.Role,
			TotalValue: entry.TotalValue,
		})
	}
	return &schemas.LeaderboardResponse{Scope: scope, Entries: entries}, nil
}

// ExportLeaderboard builds a spreadsheet of the teacher's class board.
func (c *Controller) ExportLeaderboard(ctx context.Context, actor schemas.Identity) (*excelize.File, error) {
	if actor.Role != models.RoleTeacher {
		return nil, services.ErrUnauthorizedRoster
	}

	board, err := c.GetLeaderboard(ctx, actor, schemas.ScopeClass)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Leaderboard"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "Name", "Role", "Total Value"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for i, entry := range board.Entries {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Rank); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Name); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(entry.Role)); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.TotalValue); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return nil, err
	}
	return f, nil
}

func (c *Controller) accountsInScope(ctx context.Context, actor schemas.Identity, scope schemas.LeaderboardScope) ([]*models.Account, error) {
	if scope != schemas.ScopeClass {
		return c.Accounts.GetAll(ctx)
	}
	if actor.Role == models.RoleTeacher {
		return c.Accounts.GetClass(ctx, actor.AccountID)
	}
	self, err := c.Accounts.GetByID(ctx, actor.AccountID)
	if err != nil {
		return nil, err
	}
	if self.TeacherID == nil {
		return []*models.Account{self}, nil
	}
	return c.Accounts.GetClass(ctx, *self.TeacherID)
}

func heldSymbols(accounts []*models.Account) []string {
	seen := make(map[string]struct{})
	var symbols []string
	for _, account := range accounts {
		for _, h := range account.Holdings {
			if _, ok := seen[h.Symbol]; !ok {
				seen[h.Symbol] = struct{}{}
				symbols = append(symbols, h.Symbol)
			}
		}
	}
	return symbols
}
