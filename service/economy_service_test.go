package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"discshop/events"
	"discshop/models"
)

// memEconomyRepo is an in-memory repository for stateful service tests
type memEconomyRepo struct {
	accounts map[string]*models.Account
	saveErr  error
}

func newMemEconomyRepo() *memEconomyRepo {
	return &memEconomyRepo{accounts: make(map[string]*models.Account)}
}

func (r *memEconomyRepo) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	account, ok := r.accounts[userID]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (r *memEconomyRepo) SaveAccounts(ctx context.Context, accounts ...*models.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, account := range accounts {
		copied := *account
		r.accounts[account.UserID] = &copied
	}
	return nil
}

func (r *memEconomyRepo) TopBalances(ctx context.Context, limit int) ([]*models.Account, error) {
	all := make([]*models.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		copied := *account
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Balance > all[j].Balance })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memEconomyRepo) Close() error { return nil }

func newTestService(repo EconomyRepository) *economyService {
	svc := NewEconomyService(repo, events.NewBus(), 1000).(*economyService)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestEconomyService_LazyAccountCreation(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	account, err := svc.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Balance)
	assert.Equal(t, 1, account.Level)
	assert.Empty(t, account.Transactions)

	// Second access returns the same account, not a fresh one.
	account2, err := svc.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, account.CreatedAt, account2.CreatedAt)
}

func TestEconomyService_Credit(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	account, err := svc.Credit(ctx, "user1", 250, "payment received")
	require.NoError(t, err)
	assert.Equal(t, int64(1250), account.Balance)
	assert.Equal(t, int64(250), account.TotalEarned)
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, models.TransactionTypeIncome, account.Transactions[0].Type)
	assert.Equal(t, "payment received", account.Transactions[0].Reason)

	_, err = svc.Credit(ctx, "user1", 0, "zero")
	assert.Error(t, err)
}

func TestEconomyService_DebitInsufficientFails(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	_, err := svc.Debit(ctx, "user1", 1500, "too much")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")

	// Failed debit must not mutate the account.
	account, err := svc.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Balance)
	assert.Empty(t, account.Transactions)
}

func TestEconomyService_Debit(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	account, err := svc.Debit(ctx, "user1", 400, "purchase")
	require.NoError(t, err)
	assert.Equal(t, int64(600), account.Balance)
	assert.Equal(t, int64(400), account.TotalSpent)
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, models.TransactionTypeExpense, account.Transactions[0].Type)
}

func TestEconomyService_TransferConservesBalance(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	result, err := svc.Transfer(ctx, "alice", "bob", 300)
	require.NoError(t, err)
	assert.Equal(t, int64(300), result.Amount)
	assert.Equal(t, int64(700), result.NewBalance)

	alice, err := svc.GetAccount(ctx, "alice")
	require.NoError(t, err)
	bob, err := svc.GetAccount(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, int64(700), alice.Balance)
	assert.Equal(t, int64(1300), bob.Balance)
	assert.Equal(t, int64(2000), alice.Balance+bob.Balance, "transfer must conserve total balance")

	// Paired audit records name the counterpart.
	require.Len(t, alice.Transactions, 1)
	assert.Equal(t, models.TransactionTypeTransferOut, alice.Transactions[0].Type)
	assert.Equal(t, "bob", alice.Transactions[0].Reason)
	require.Len(t, bob.Transactions, 1)
	assert.Equal(t, models.TransactionTypeTransferIn, bob.Transactions[0].Type)
	assert.Equal(t, "alice", bob.Transactions[0].Reason)
}

func TestEconomyService_TransferValidation(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	_, err := svc.Transfer(ctx, "alice", "alice", 100)
	assert.Error(t, err)

	_, err = svc.Transfer(ctx, "alice", "bob", 0)
	assert.Error(t, err)

	_, err = svc.Transfer(ctx, "alice", "bob", 5000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")

	// No accounts were mutated by the failed attempts.
	alice, err := svc.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), alice.Balance)
	assert.Empty(t, alice.Transactions)
}

func TestEconomyService_AddXPSingleLevel(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	// Level 1 + 250 XP: one level-up (threshold 100), then 150 < 200 stops.
	result, err := svc.AddXP(ctx, "user1", 250)
	require.NoError(t, err)
	assert.Equal(t, 1, result.LevelsGained)
	assert.Equal(t, 2, result.NewLevel)
	assert.Equal(t, int64(200), result.Bonus)

	account, err := svc.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, account.Level)
	assert.Equal(t, int64(150), account.XP)
	assert.Equal(t, int64(1200), account.Balance, "level bonus credited to balance")
}

func TestEconomyService_AddXPMultipleLevels(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	// Level 1 + 300 XP: 300-100 -> level 2 xp 200, 200-200 -> level 3 xp 0.
	result, err := svc.AddXP(ctx, "user1", 300)
	require.NoError(t, err)
	assert.Equal(t, 2, result.LevelsGained)
	assert.Equal(t, 3, result.NewLevel)
	assert.Equal(t, int64(500), result.Bonus, "both levels pay their own bonus")

	account, err := svc.GetAccount(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.XP)
	assert.Equal(t, int64(1500), account.Balance)
}

func TestEconomyService_ClaimDailyFirstClaim(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	result, err := svc.ClaimDaily(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, int64(110), result.Reward, "base 100 plus streak bonus 10")
	assert.Equal(t, int64(0), result.WeekBonus)
	assert.Equal(t, int64(1110), result.NewBalance)
}

func TestEconomyService_ClaimDailyRejectsEarlyClaim(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	_, err := svc.ClaimDaily(ctx, "user1")
	require.NoError(t, err)

	// Ten hours later the claim is still on cooldown.
	base := svc.now()
	svc.now = func() time.Time { return base.Add(10 * time.Hour) }

	_, err = svc.ClaimDaily(ctx, "user1")
	require.Error(t, err)

	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, 14*time.Hour, cooldown.Wait)
}

func TestEconomyService_ClaimDailyStreakRules(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()
	base := svc.now()

	_, err := svc.ClaimDaily(ctx, "user1")
	require.NoError(t, err)

	// 30h later: inside the 24-48h window, streak continues.
	svc.now = func() time.Time { return base.Add(30 * time.Hour) }
	result, err := svc.ClaimDaily(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
	assert.Equal(t, int64(120), result.Reward)

	// 80h after that: past the window, streak resets.
	svc.now = func() time.Time { return base.Add(110 * time.Hour) }
	result, err = svc.ClaimDaily(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak)
}

func TestEconomyService_ClaimDailyWeekBonus(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()
	base := svc.now()

	var result *models.DailyResult
	var err error
	for day := 0; day < 7; day++ {
		offset := time.Duration(day) * 25 * time.Hour
		svc.now = func() time.Time { return base.Add(offset) }
		result, err = svc.ClaimDaily(ctx, "user1")
		require.NoError(t, err)
	}

	assert.Equal(t, 7, result.Streak)
	assert.Equal(t, int64(500), result.WeekBonus)
}

func TestEconomyService_WorkEarnsAndCoolsDown(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	svc.roll = func(n int64) int64 { return 0 }
	ctx := context.Background()

	result, err := svc.Work(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.Earned)
	assert.Equal(t, int64(10), result.XPGained)
	assert.Equal(t, int64(1100), result.NewBalance)

	_, err = svc.Work(ctx, "user1")
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)

	// An hour later work is available again.
	base := svc.now()
	svc.now = func() time.Time { return base.Add(time.Hour) }
	_, err = svc.Work(ctx, "user1")
	assert.NoError(t, err)
}

func TestEconomyService_CrimeWin(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	svc.roll = func(n int64) int64 { return 0 } // coin flip 0 = win, payout roll 0
	ctx := context.Background()

	result, err := svc.Crime(ctx, "user1")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(200), result.Amount)
	assert.Equal(t, int64(1200), result.NewBalance)
}

func TestEconomyService_CrimeLossClampedToBalance(t *testing.T) {
	repo := newMemEconomyRepo()
	svc := newTestService(repo)
	svc.roll = func(n int64) int64 { return n - 1 } // coin flip 1 = loss, max loss roll
	ctx := context.Background()

	// Drain the account to below the maximum loss.
	_, err := svc.Debit(ctx, "user1", 950, "drain")
	require.NoError(t, err)

	result, err := svc.Crime(ctx, "user1")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, int64(50), result.Amount, "loss clamps to remaining balance")
	assert.Equal(t, int64(0), result.NewBalance)

	// A second loss with zero balance costs nothing.
	result, err = svc.Crime(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Amount)
	assert.Equal(t, int64(0), result.NewBalance)
}

func TestEconomyService_TopBalances(t *testing.T) {
	svc := newTestService(newMemEconomyRepo())
	ctx := context.Background()

	_, err := svc.Credit(ctx, "rich", 5000, "seed")
	require.NoError(t, err)
	_, err = svc.GetAccount(ctx, "average")
	require.NoError(t, err)

	top, err := svc.TopBalances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "rich", top[0].UserID)
}

func TestEconomyService_PersistenceErrorDoesNotFailOperation(t *testing.T) {
	repo := new(MockEconomyRepository)
	repo.On("GetAccount", mock.Anything, "user1").Return(nil, nil)
	repo.On("SaveAccounts", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := newTestService(repo)
	ctx := context.Background()

	// The write failure is logged, not surfaced; in-memory state wins.
	account, err := svc.Credit(ctx, "user1", 100, "payment")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), account.Balance)
	repo.AssertExpectations(t)
}
