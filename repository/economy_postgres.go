package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"discshop/database"
	"discshop/models"
)

// queryable abstracts the query methods shared by pgxpool.Pool and pgx.Tx
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresEconomyRepository stores accounts in PostgreSQL. Selected when
// DATABASE_URL is configured; otherwise the flat-file backend is used.
type PostgresEconomyRepository struct {
	db *database.DB
}

// NewPostgresEconomyRepository creates a new postgres-backed repository.
func NewPostgresEconomyRepository(db *database.DB) *PostgresEconomyRepository {
	return &PostgresEconomyRepository{db: db}
}

const accountColumns = `user_id, balance, bank, xp, level, total_earned, total_spent,
		daily_streak, last_daily, last_collect, achievements, transactions, created_at, updated_at`

// GetAccount retrieves an account by user ID, returning (nil, nil) when
// no account exists.
func (r *PostgresEconomyRepository) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	return getAccount(ctx, r.db, userID)
}

func getAccount(ctx context.Context, q queryable, userID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`

	var (
		account          models.Account
		achievementsJSON []byte
		transactionsJSON []byte
	)
	err := q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.Bank,
		&account.XP,
		&account.Level,
		&account.TotalEarned,
		&account.TotalSpent,
		&account.DailyStreak,
		&account.LastDaily,
		&account.LastCollect,
		&achievementsJSON,
		&transactionsJSON,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := json.Unmarshal(achievementsJSON, &account.Achievements); err != nil {
		return nil, fmt.Errorf("failed to parse achievements: %w", err)
	}
	if err := json.Unmarshal(transactionsJSON, &account.Transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return &account, nil
}

// SaveAccounts upserts the given accounts within a single transaction,
// so a transfer either persists both sides or neither.
func (r *PostgresEconomyRepository) SaveAccounts(ctx context.Context, accounts ...*models.Account) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, account := range accounts {
			if err := saveAccount(ctx, tx, account); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveAccount(ctx context.Context, q queryable, account *models.Account) error {
	achievementsJSON, err := json.Marshal(account.Achievements)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	transactionsJSON, err := json.Marshal(account.Transactions)
	if err != nil {
		return fmt.Errorf("failed to marshal transactions: %w", err)
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = EXCLUDED.balance,
			bank = EXCLUDED.bank,
			xp = EXCLUDED.xp,
			level = EXCLUDED.level,
			total_earned = EXCLUDED.total_earned,
			total_spent = EXCLUDED.total_spent,
			daily_streak = EXCLUDED.daily_streak,
			last_daily = EXCLUDED.last_daily,
			last_collect = EXCLUDED.last_collect,
			achievements = EXCLUDED.achievements,
			transactions = EXCLUDED.transactions,
			updated_at = EXCLUDED.updated_at`

	_, err = q.Exec(ctx, query,
		account.UserID,
		account.Balance,
		account.Bank,
		account.XP,
		account.Level,
		account.TotalEarned,
		account.TotalSpent,
		account.DailyStreak,
		account.LastDaily,
		account.LastCollect,
		achievementsJSON,
		transactionsJSON,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// TopBalances returns up to limit accounts ordered by balance descending.
func (r *PostgresEconomyRepository) TopBalances(ctx context.Context, limit int) ([]*models.Account, error) {
	query := `SELECT user_id FROM accounts ORDER BY balance DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top balances: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user ID: %w", err)
		}
		userIDs = append(userIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top balances: %w", err)
	}

	accounts := make([]*models.Account, 0, len(userIDs))
	for _, userID := range userIDs {
		account, err := getAccount(ctx, r.db, userID)
		if err != nil {
			return nil, err
		}
		if account != nil {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

// Close is a no-op; pool lifetime is managed by the caller.
func (r *PostgresEconomyRepository) Close() error {
	return nil
}
