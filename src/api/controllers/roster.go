package controllers

import (
	"context"

	"classtrade/src/models"
	"classtrade/src/repositories"
	"classtrade/src/schemas"
	"classtrade/src/services"
	"classtrade/src/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddStudent creates a student account on the acting teacher's roster with
// the configured starting cash.
func (c *Controller) AddStudent(ctx context.Context, actor schemas.Identity, req *schemas.AddStudentRequest) (*schemas.StudentResponse, error) {
	if actor.Role != models.RoleTeacher {
		return nil, services.ErrUnauthorizedRoster
	}
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

	teacherID := actor.AccountID
	student := &models.Account{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      models.RoleStudent,
		TeacherID: &teacherID,
		Cash:      c.StartingCash,
	}
	if err := c.Accounts.Create(ctx, student); err != nil {
		return nil, err
	}

	return &schemas.StudentResponse{
		AccountID: student.ID,
		Name:      student.Name,
		Email:     student.Email,
		Cash:      student.Cash,
	}, nil
}

// RemoveStudent deletes a student the actor owns; holdings, trades and
// achievements go with the account row.
func (c *Controller) RemoveStudent(ctx context.Context, actor schemas.Identity, studentID string) error {
	student, err := c.Accounts.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if err := services.AuthorizeRoster(actor.AccountID, actor.Role, student); err != nil {
		return err
	}
	return c.Accounts.Delete(ctx, studentID)
}

// AdjustStudentCash applies a signed delta to a student's cash under the
// same row lock as trades, so a concurrent trade cannot be lost. The
// resulting balance may not go negative.
func (c *Controller) AdjustStudentCash(ctx context.Context, actor schemas.Identity, studentID string, delta float64) (*schemas.AdjustCashResponse, error) {
	account, err := c.Accounts.WithAccountForUpdate(ctx, studentID,
		func(ctx context.Context, tx pgx.Tx, account *models.Account) (*repositories.AccountUpdate, error) {
			if err := services.AuthorizeRoster(actor.AccountID, actor.Role, account); err != nil {
				return nil, err
			}
			newCash := account.Cash + delta
			if newCash < 0 {
				return nil, services.ErrInsufficientFunds
			}
			return &repositories.AccountUpdate{Cash: newCash}, nil
		})
	if err != nil {
		return nil, err
	}
	return &schemas.AdjustCashResponse{AccountID: account.ID, Cash: account.Cash}, nil
}

// UpdateStudentCredentials resets the password of a student the actor owns.
func (c *Controller) UpdateStudentCredentials(ctx context.Context, actor schemas.Identity, studentID, password string) error {
	if password == "" {
		return utils.BadRequest("password is required")
	}
	student, err := c.Accounts.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if err := services.AuthorizeRoster(actor.AccountID, actor.Role, student); err != nil {
		return err
	}
	hash, err := c.Hasher.Hash(password)
	if err != nil {
		return err
	}
	return c.Accounts.UpdateCredentials(ctx, studentID, hash)
}
