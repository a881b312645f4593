package service

import (
	"context"

	"discshop/models"
)

// EconomyRepository defines the interface for account persistence
type EconomyRepository interface {
	// GetAccount retrieves an account by user ID, returning (nil, nil)
	// when no account exists yet
	GetAccount(ctx context.Context, userID string) (*models.Account, error)

	// SaveAccounts persists the given accounts. Implementations must
	// store all of them or none, so paired transfer mutations cannot
	// be half-persisted.
	SaveAccounts(ctx context.Context, accounts ...*models.Account) error

	// TopBalances returns up to limit accounts ordered by balance descending
	TopBalances(ctx context.Context, limit int) ([]*models.Account, error)

	// Close flushes any buffered state
	Close() error
}

// EconomyService defines the interface for ledger operations
type EconomyService interface {
	// GetAccount retrieves the user's account, creating it with the
	// starting balance on first access
	GetAccount(ctx context.Context, userID string) (*models.Account, error)

	// Credit unconditionally adds amount to the user's balance
	Credit(ctx context.Context, userID string, amount int64, reason string) (*models.Account, error)

	// Debit removes amount from the user's balance, failing without
	// mutation if the balance is insufficient
	Debit(ctx context.Context, userID string, amount int64, reason string) (*models.Account, error)

	// Transfer moves amount from one user to another
	Transfer(ctx context.Context, fromID, toID string, amount int64) (*models.TransferResult, error)

	// AddXP grants experience, applying any level-ups and their bonuses
	AddXP(ctx context.Context, userID string, amount int64) (*models.LevelUpResult, error)

	// ClaimDaily claims the daily reward, enforcing the 24h cooldown
	// and streak rules
	ClaimDaily(ctx context.Context, userID string) (*models.DailyResult, error)

	// Work earns currency and XP on an hourly cooldown
	Work(ctx context.Context, userID string) (*models.WorkResult, error)

	// Crime gambles for a larger payout with a chance of losing money
	Crime(ctx context.Context, userID string) (*models.CrimeResult, error)

	// TopBalances returns the richest accounts
	TopBalances(ctx context.Context, limit int) ([]*models.Account, error)
}
