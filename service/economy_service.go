package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"discshop/events"
	"discshop/models"
)

const (
	dailyBaseReward    = 100
	dailyStreakCap     = 200
	dailyWeekBonus     = 500
	workCooldown       = time.Hour
	levelXPMultiplier  = 100
	levelBonusPerLevel = 100
)

// CooldownError reports how long until the action may be retried.
type CooldownError struct {
	Wait time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for %s", e.Wait.Round(time.Second))
}

// economyService implements the EconomyService interface. A single
// mutex serializes all ledger mutations so a transfer's paired debit
// and credit are indivisible with respect to other operations.
type economyService struct {
	mu              sync.Mutex
	repo            EconomyRepository
	eventBus        *events.Bus
	startingBalance int64

	now  func() time.Time
	roll func(n int64) int64
}

// NewEconomyService creates a new economy service
func NewEconomyService(repo EconomyRepository, eventBus *events.Bus, startingBalance int64) EconomyService {
	return &economyService{
		repo:            repo,
		eventBus:        eventBus,
		startingBalance: startingBalance,
		now:             time.Now,
		roll:            rand.Int63n,
	}
}

// GetAccount retrieves the user's account, creating it lazily
func (s *economyService) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreate(ctx, userID)
}

// getOrCreate loads an account or creates it with the starting balance.
// Caller must hold the mutex.
func (s *economyService) getOrCreate(ctx context.Context, userID string) (*models.Account, error) {
	account, err := s.repo.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	account = models.NewAccount(userID, s.startingBalance, s.now())
	s.persist(ctx, account)

	log.WithFields(log.Fields{
		"userID":  userID,
		"balance": account.Balance,
	}).Info("Created new economy account")
	return account, nil
}

// Credit unconditionally adds amount to the user's balance
func (s *economyService) Credit(ctx context.Context, userID string, amount int64, reason string) (*models.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.applyCredit(account, amount, reason)
	s.persist(ctx, account)
	return account, nil
}

// applyCredit mutates the account and emits the balance change.
// Caller must hold the mutex.
func (s *economyService) applyCredit(account *models.Account, amount int64, reason string) {
	oldBalance := account.Balance
	account.Balance += amount
	account.TotalEarned += amount
	account.Append(models.TransactionTypeIncome, amount, reason, s.now())
	s.emitBalanceChange(account.UserID, oldBalance, account.Balance, models.TransactionTypeIncome)
}

// Debit removes amount from the balance, failing without mutation when
// the balance is insufficient
func (s *economyService) Debit(ctx context.Context, userID string, amount int64, reason string) (*models.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.Balance < amount {
		return nil, fmt.Errorf("insufficient balance: have %d, need %d", account.Balance, amount)
	}

	oldBalance := account.Balance
	account.Balance -= amount
	account.TotalSpent += amount
	account.Append(models.TransactionTypeExpense, amount, reason, s.now())
	s.emitBalanceChange(userID, oldBalance, account.Balance, models.TransactionTypeExpense)

	s.persist(ctx, account)
	return account, nil
}

// Transfer moves amount between two users. Both mutations happen before
// persistence and both accounts are saved in one call.
func (s *economyService) Transfer(ctx context.Context, fromID, toID string, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("transfer amount must be positive")
	}
	if fromID == toID {
		return nil, fmt.Errorf("cannot transfer to yourself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.getOrCreate(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender account: %w", err)
	}
	if from.Balance < amount {
		return nil, fmt.Errorf("insufficient balance: have %d, need %d", from.Balance, amount)
	}

	to, err := s.getOrCreate(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipient account: %w", err)
	}

	now := s.now()
	oldFrom := from.Balance
	oldTo := to.Balance

	from.Balance -= amount
	from.TotalSpent += amount
	from.Append(models.TransactionTypeTransferOut, amount, toID, now)

	to.Balance += amount
	to.TotalEarned += amount
	to.Append(models.TransactionTypeTransferIn, amount, fromID, now)

	s.persist(ctx, from, to)

	s.emitBalanceChange(fromID, oldFrom, from.Balance, models.TransactionTypeTransferOut)
	s.emitBalanceChange(toID, oldTo, to.Balance, models.TransactionTypeTransferIn)

	return &models.TransferResult{
		Amount:      amount,
		RecipientID: toID,
		NewBalance:  from.Balance,
	}, nil
}

// AddXP grants experience, applying level-ups and their bonuses
func (s *economyService) AddXP(ctx context.Context, userID string, amount int64) (*models.LevelUpResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("xp amount must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.applyXP(account, amount)
	s.persist(ctx, account)
	return result, nil
}

// applyXP adds XP to the account and resolves level-ups. A large grant
// may cross several thresholds; each new level pays its own bonus.
// Caller must hold the mutex.
func (s *economyService) applyXP(account *models.Account, amount int64) *models.LevelUpResult {
	account.XP += amount

	result := &models.LevelUpResult{NewLevel: account.Level}
	for account.XP >= int64(account.Level)*levelXPMultiplier {
		account.XP -= int64(account.Level) * levelXPMultiplier
		account.Level++
		result.LevelsGained++

		bonus := int64(account.Level) * levelBonusPerLevel
		result.Bonus += bonus
		s.applyCredit(account, bonus, fmt.Sprintf("level up to %d", account.Level))
	}
	result.NewLevel = account.Level

	if result.LevelsGained > 0 {
		log.WithFields(log.Fields{
			"userID": account.UserID,
			"level":  account.Level,
			"bonus":  result.Bonus,
		}).Info("Account leveled up")
	}
	return result
}

// ClaimDaily claims the daily reward, enforcing the 24h cooldown and
// the 48h streak window
func (s *economyService) ClaimDaily(ctx context.Context, userID string) (*models.DailyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if account.LastDaily != nil {
		elapsed := now.Sub(*account.LastDaily)
		if elapsed < 24*time.Hour {
			return nil, &CooldownError{Wait: 24*time.Hour - elapsed}
		}
	}

	// Streak continues only when the previous claim was 24-48h ago.
	streak := 1
	if account.LastDaily != nil && now.Sub(*account.LastDaily) <= 48*time.Hour {
		streak = account.DailyStreak + 1
	}

	streakBonus := int64(streak) * 10
	if streakBonus > dailyStreakCap {
		streakBonus = dailyStreakCap
	}
	var weekBonus int64
	if streak%7 == 0 {
		weekBonus = dailyWeekBonus
	}
	reward := int64(dailyBaseReward) + streakBonus

	s.applyCredit(account, reward+weekBonus, "daily reward")
	account.DailyStreak = streak
	account.LastDaily = &now

	s.persist(ctx, account)

	s.eventBus.Emit(ctx, events.DailyClaimedEvent{
		UserID: userID,
		Reward: reward + weekBonus,
		Streak: streak,
	})

	return &models.DailyResult{
		Reward:      reward,
		StreakBonus: streakBonus,
		WeekBonus:   weekBonus,
		Streak:      streak,
		NewBalance:  account.Balance,
	}, nil
}

// Work earns currency and XP on an hourly cooldown
func (s *economyService) Work(ctx context.Context, userID string) (*models.WorkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if account.LastCollect != nil {
		elapsed := now.Sub(*account.LastCollect)
		if elapsed < workCooldown {
			return nil, &CooldownError{Wait: workCooldown - elapsed}
		}
	}

	earned := 100 + s.roll(201) // 100-300
	xpGained := 10 + s.roll(16) // 10-25

	s.applyCredit(account, earned, "work")
	account.LastCollect = &now
	levelUp := s.applyXP(account, xpGained)

	s.persist(ctx, account)

	return &models.WorkResult{
		Earned:     earned,
		XPGained:   xpGained,
		LevelUp:    levelUp,
		NewBalance: account.Balance,
	}, nil
}

// Crime gambles for a larger payout. Half the time it pays 200-500,
// otherwise it costs up to 150, never dropping the balance below zero.
func (s *economyService) Crime(ctx context.Context, userID string) (*models.CrimeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.roll(2) == 0 {
		won := 200 + s.roll(301) // 200-500
		s.applyCredit(account, won, "crime")
		s.persist(ctx, account)
		return &models.CrimeResult{
			Success:    true,
			Amount:     won,
			NewBalance: account.Balance,
		}, nil
	}

	loss := 1 + s.roll(150) // 1-150
	if loss > account.Balance {
		loss = account.Balance
	}
	if loss > 0 {
		oldBalance := account.Balance
		account.Balance -= loss
		account.TotalSpent += loss
		account.Append(models.TransactionTypeExpense, loss, "crime", s.now())
		s.emitBalanceChange(userID, oldBalance, account.Balance, models.TransactionTypeExpense)
		s.persist(ctx, account)
	}

	return &models.CrimeResult{
		Success:    false,
		Amount:     loss,
		NewBalance: account.Balance,
	}, nil
}

// TopBalances returns the richest accounts
func (s *economyService) TopBalances(ctx context.Context, limit int) ([]*models.Account, error) {
	accounts, err := s.repo.TopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}
	return accounts, nil
}

// persist saves accounts, logging failures. The in-memory state is
// authoritative until the next successful flush.
func (s *economyService) persist(ctx context.Context, accounts ...*models.Account) {
	if err := s.repo.SaveAccounts(ctx, accounts...); err != nil {
		log.WithError(err).Error("Failed to persist accounts, keeping in-memory state")
	}
}

func (s *economyService) emitBalanceChange(userID string, oldBalance, newBalance int64, txType models.TransactionType) {
	s.eventBus.Emit(context.Background(), events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      oldBalance,
		NewBalance:      newBalance,
		ChangeAmount:    newBalance - oldBalance,
		TransactionType: txType,
	})
}
