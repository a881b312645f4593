package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discshop/models"
	"discshop/repository/testutil"
)

func TestPostgresEconomyRepository_GetMissingReturnsNil(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresEconomyRepository(testDB.DB)
	ctx := context.Background()

	account, err := repo.GetAccount(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, account)
}

func TestPostgresEconomyRepository_SaveAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresEconomyRepository(testDB.DB)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	account := models.NewAccount("user1", 1000, now)
	account.Balance = 1250
	account.XP = 50
	account.Level = 2
	account.DailyStreak = 3
	account.LastDaily = &now
	account.Achievements = []string{"first_daily"}
	account.Append(models.TransactionTypeIncome, 250, "work", now)

	require.NoError(t, repo.SaveAccounts(ctx, account))

	got, err := repo.GetAccount(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1250), got.Balance)
	assert.Equal(t, int64(50), got.XP)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 3, got.DailyStreak)
	require.NotNil(t, got.LastDaily)
	assert.True(t, got.LastDaily.Equal(now))
	assert.Equal(t, []string{"first_daily"}, got.Achievements)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "work", got.Transactions[0].Reason)
}

func TestPostgresEconomyRepository_UpsertOverwrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresEconomyRepository(testDB.DB)
	ctx := context.Background()
	now := time.Now()

	account := models.NewAccount("user1", 1000, now)
	require.NoError(t, repo.SaveAccounts(ctx, account))

	account.Balance = 4200
	account.Level = 5
	require.NoError(t, repo.SaveAccounts(ctx, account))

	got, err := repo.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), got.Balance)
	assert.Equal(t, 5, got.Level)
}

func TestPostgresEconomyRepository_SaveAccountsTransactional(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresEconomyRepository(testDB.DB)
	ctx := context.Background()
	now := time.Now()

	sender := models.NewAccount("sender", 1000, now)
	sender.Balance = 600
	recipient := models.NewAccount("recipient", 1000, now)
	recipient.Balance = 1400

	require.NoError(t, repo.SaveAccounts(ctx, sender, recipient))

	gotSender, err := repo.GetAccount(ctx, "sender")
	require.NoError(t, err)
	gotRecipient, err := repo.GetAccount(ctx, "recipient")
	require.NoError(t, err)
	assert.Equal(t, int64(600), gotSender.Balance)
	assert.Equal(t, int64(1400), gotRecipient.Balance)
}

func TestPostgresEconomyRepository_TopBalances(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresEconomyRepository(testDB.DB)
	ctx := context.Background()
	now := time.Now()

	balances := map[string]int64{"a": 500, "b": 5000, "c": 2500, "d": 100}
	for id, balance := range balances {
		account := models.NewAccount(id, 1000, now)
		account.Balance = balance
		require.NoError(t, repo.SaveAccounts(ctx, account))
	}

	top, err := repo.TopBalances(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].UserID)
	assert.Equal(t, "c", top[1].UserID)
	assert.Equal(t, "a", top[2].UserID)
}
