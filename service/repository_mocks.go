package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"discshop/models"
)

// MockEconomyRepository is a mock implementation of EconomyRepository
type MockEconomyRepository struct {
	mock.Mock
}

func (m *MockEconomyRepository) GetAccount(ctx context.Context, userID string) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockEconomyRepository) SaveAccounts(ctx context.Context, accounts ...*models.Account) error {
	callArgs := make([]any, 0, len(accounts)+1)
	callArgs = append(callArgs, ctx)
	for _, account := range accounts {
		callArgs = append(callArgs, account)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}

func (m *MockEconomyRepository) TopBalances(ctx context.Context, limit int) ([]*models.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockEconomyRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
