package models

import "time"

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type Account struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      Role      `db:"role"`
	TeacherID *string   `db:"teacher_id"`
	Cash      float64   `db:"cash"`
	Version   int       `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Loaded alongside the row by the account repository.
	Holdings     []Holding
	Achievements []string
}

// HoldingFor returns a pointer into the Holdings slice for symbol, or nil
// when the symbol is not held.
func (a *Account) HoldingFor(symbol string) *Holding {
	for i := range a.Holdings {
		if a.Holdings[i].Symbol == symbol {
			return &a.Holdings[i]
		}
	}
	return nil
}

// Symbols returns the distinct symbols currently held.
func (a *Account) Symbols() []string {
	symbols := make([]string, 0, len(a.Holdings))
	for _, h := range a.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}

func (a *Account) HasAchievement(badge string) bool {
	for _, b := range a.Achievements {
		if b == badge {
			return true
		}
	}
	return false
}
