// Package mocks provides mock implementations of the budget use cases for testing the CLI.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
)

// MockBudgetUseCase is a mock implementation of BudgetUseCase for testing.
type MockBudgetUseCase struct {
	mock.Mock
}

// Create mocks the Create method of BudgetUseCase.
func (m *MockBudgetUseCase) Create(ctx context.Context, name string) (*budgetDomain.Budget, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.Budget), args.Error(1)
}

// List mocks the List method of BudgetUseCase.
func (m *MockBudgetUseCase) List(ctx context.Context) ([]*budgetDomain.Budget, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*budgetDomain.Budget), args.Error(1)
}

// Get mocks the Get method of BudgetUseCase.
func (m *MockBudgetUseCase) Get(ctx context.Context, id int64) (*budgetDomain.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.Budget), args.Error(1)
}

// Rename mocks the Rename method of BudgetUseCase.
func (m *MockBudgetUseCase) Rename(ctx context.Context, id int64, newName string) (*budgetDomain.Budget, error) {
	args := m.Called(ctx, id, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*budgetDomain.Budget), args.Error(1)
}

// Delete mocks the Delete method of BudgetUseCase.
func (m *MockBudgetUseCase) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
