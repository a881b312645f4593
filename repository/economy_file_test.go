package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discshop/models"
)

func TestFileEconomyRepository_MissingAccountReturnsNil(t *testing.T) {
	repo, err := NewFileEconomyRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()

	account, err := repo.GetAccount(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, account)
}

func TestFileEconomyRepository_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	repo, err := NewFileEconomyRepository(dir)
	require.NoError(t, err)

	account := models.NewAccount("user1", 1000, now)
	account.Balance = 1500
	account.Level = 3
	account.DailyStreak = 2
	account.LastDaily = &now
	account.Append(models.TransactionTypeIncome, 500, "work", now)

	require.NoError(t, repo.SaveAccounts(ctx, account))
	require.NoError(t, repo.Close())

	// A fresh repository reads the snapshot back.
	reloaded, err := NewFileEconomyRepository(dir)
	require.NoError(t, err)
	defer reloaded.Close()

	got, err := reloaded.GetAccount(ctx, "user1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1500), got.Balance)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 2, got.DailyStreak)
	require.NotNil(t, got.LastDaily)
	assert.True(t, got.LastDaily.Equal(now))
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, models.TransactionTypeIncome, got.Transactions[0].Type)
}

func TestFileEconomyRepository_SaveMultipleAtomically(t *testing.T) {
	repo, err := NewFileEconomyRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()
	now := time.Now()

	sender := models.NewAccount("sender", 1000, now)
	sender.Balance = 700
	recipient := models.NewAccount("recipient", 1000, now)
	recipient.Balance = 1300

	require.NoError(t, repo.SaveAccounts(ctx, sender, recipient))

	gotSender, err := repo.GetAccount(ctx, "sender")
	require.NoError(t, err)
	gotRecipient, err := repo.GetAccount(ctx, "recipient")
	require.NoError(t, err)
	assert.Equal(t, int64(700), gotSender.Balance)
	assert.Equal(t, int64(1300), gotRecipient.Balance)
}

func TestFileEconomyRepository_GetReturnsCopy(t *testing.T) {
	repo, err := NewFileEconomyRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	account := models.NewAccount("user1", 1000, time.Now())
	require.NoError(t, repo.SaveAccounts(ctx, account))

	first, err := repo.GetAccount(ctx, "user1")
	require.NoError(t, err)
	first.Balance = 999999

	second, err := repo.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), second.Balance, "mutating a returned account must not affect the store")
}

func TestFileEconomyRepository_TopBalances(t *testing.T) {
	repo, err := NewFileEconomyRepository(t.TempDir())
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()
	now := time.Now()

	for _, tc := range []struct {
		id      string
		balance int64
	}{
		{"poor", 100},
		{"rich", 9000},
		{"middle", 2000},
	} {
		account := models.NewAccount(tc.id, 1000, now)
		account.Balance = tc.balance
		require.NoError(t, repo.SaveAccounts(ctx, account))
	}

	top, err := repo.TopBalances(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "rich", top[0].UserID)
	assert.Equal(t, "middle", top[1].UserID)
}

func TestFileEconomyRepository_PreservesOpaqueBlobs(t *testing.T) {
	dir := t.TempDir()
	gacha := map[string]any{"user1": map[string]any{"pulls": float64(12)}}
	raw, err := json.Marshal(gacha)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, gachaFile), raw, 0o644))

	repo, err := NewFileEconomyRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	data, err := os.ReadFile(filepath.Join(dir, gachaFile))
	require.NoError(t, err)

	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(data, &roundTripped))
	assert.Equal(t, gacha, roundTripped)
}

func TestFileEconomyRepository_RecoversFromMissingFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	repo, err := NewFileEconomyRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.SaveAccounts(context.Background(), models.NewAccount("u", 1000, time.Now())))
	_, err = os.Stat(filepath.Join(dir, economyFile))
	assert.NoError(t, err)
}
