package models

import (
	"time"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeIncome      TransactionType = "income"
	TransactionTypeExpense     TransactionType = "expense"
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"
)

// TransactionRecord is an append-only audit entry on an account.
// Records are never mutated or removed once written.
type TransactionRecord struct {
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	Reason    string          `json:"reason"`
	Timestamp time.Time       `json:"timestamp"`
}

// Account represents a per-user virtual-currency record with leveling
// and a full transaction history. Created lazily on first access.
type Account struct {
	UserID       string              `json:"user_id"`
	Balance      int64               `json:"balance"`
	Bank         int64               `json:"bank"`
	XP           int64               `json:"xp"`
	Level        int                 `json:"level"`
	TotalEarned  int64               `json:"total_earned"`
	TotalSpent   int64               `json:"total_spent"`
	DailyStreak  int                 `json:"daily_streak"`
	LastDaily    *time.Time          `json:"last_daily"`
	LastCollect  *time.Time          `json:"last_collect"`
	Achievements []string            `json:"achievements"`
	Transactions []TransactionRecord `json:"transactions"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewAccount creates an account with the given starting balance.
func NewAccount(userID string, startingBalance int64, now time.Time) *Account {
	return &Account{
		UserID:       userID,
		Balance:      startingBalance,
		Level:        1,
		Achievements: []string{},
		Transactions: []TransactionRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Append records a ledger entry and bumps the updated timestamp.
func (a *Account) Append(txType TransactionType, amount int64, reason string, now time.Time) {
	a.Transactions = append(a.Transactions, TransactionRecord{
		Type:      txType,
		Amount:    amount,
		Reason:    reason,
		Timestamp: now,
	})
	a.UpdatedAt = now
}

// DailyResult describes the outcome of a daily reward claim.
type DailyResult struct {
	Reward      int64
	StreakBonus int64
	WeekBonus   int64
	Streak      int
	NewBalance  int64
}

// TransferResult contains the outcome of a successful transfer
type TransferResult struct {
	Amount      int64
	RecipientID string
	NewBalance  int64
}

// WorkResult describes the outcome of a work shift.
type WorkResult struct {
	Earned     int64
	XPGained   int64
	LevelUp    *LevelUpResult
	NewBalance int64
}

// CrimeResult describes the outcome of a crime attempt.
type CrimeResult struct {
	Success    bool
	Amount     int64
	NewBalance int64
}

// LevelUpResult describes level gains from an XP grant.
type LevelUpResult struct {
	LevelsGained int
	NewLevel     int
	Bonus        int64
}
