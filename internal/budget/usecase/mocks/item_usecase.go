package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
)

// MockItemUseCase is a mock implementation of ItemUseCase for testing.
type MockItemUseCase struct {
	mock.Mock
}

// Add mocks the Add method of ItemUseCase.
func (m *MockItemUseCase) Add(
	ctx context.Context,
	budgetID int64,
	description, amount string,
) (*budgetDomain.Item, error) {
	args := m.Called(ctx, budgetID, description, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.Item), args.Error(1)
}

// List mocks the List method of ItemUseCase.
func (m *MockItemUseCase) List(ctx context.Context, budgetID int64) (*budgetDomain.ItemList, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.ItemList), args.Error(1)
}

// Update mocks the Update method of ItemUseCase.
func (m *MockItemUseCase) Update(
	ctx context.Context,
	itemID int64,
	input budgetDomain.UpdateItemInput,
) (*budgetDomain.Item, error) {
	args := m.Called(ctx, itemID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.Item), args.Error(1)
}

// Delete mocks the Delete method of ItemUseCase.
func (m *MockItemUseCase) Delete(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
