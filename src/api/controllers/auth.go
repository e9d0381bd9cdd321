package controllers

import (
	"context"

	"classtrade/src/models"
	"classtrade/src/schemas"
	"classtrade/src/utils"

	"github.com/google/uuid"
)

// RegisterTeacher creates a teacher account. Students are created by their
// teacher through the roster endpoints instead.
func (c *Controller) RegisterTeacher(ctx context.Context, req *schemas.RegisterRequest) (*models.Account, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, utils.BadRequest("name, email and password are required")
	}
	if _, err := c.Accounts.GetByEmail(ctx, req.Email); err == nil {
		return nil, utils.BadRequest("email already registered")
	}

	hash, err := c.Hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleTeacher,
		Cash:     c.StartingCash,
	}
	if err := c.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (c *Controller) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := c.Accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}
	if err := c.Hasher.Compare(account.Password, password); err != nil {
		return nil, utils.Unauthorized("invalid credentials")
	}
	return account, nil
}
