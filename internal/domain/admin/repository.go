package admin

import (
	"context"
	"time"
)

// Repository defines the persistence operations on admin accounts
type Repository interface {
	Create(ctx context.Context, account *Account) error
	Count(ctx context.Context) (int64, error)
	// First returns the account with the lowest ID.
	First(ctx context.Context) (*Account, error)
	GetByID(ctx context.Context, id uint) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	// Update persists every mutable column, including clearing the verification fields.
	Update(ctx context.Context, account *Account) error
	// RecordFailedAttempt atomically counts a wrong guess against the pending code and drops the
	// code once maxAttempts is reached. Nothing changes if code is no longer the pending one.
	RecordFailedAttempt(ctx context.Context, id uint, code string, maxAttempts int) error
	ClearExpiredCodes(ctx context.Context, before time.Time) (int64, error)
}
