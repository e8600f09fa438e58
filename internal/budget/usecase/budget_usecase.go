package usecase

import (
	"context"
	"errors"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	"github.com/allisson/budgets/internal/database"
)

// budgetUseCase implements the BudgetUseCase interface.
type budgetUseCase struct {
	txManager  database.TxManager
	budgetRepo BudgetRepository
	itemRepo   ItemRepository
}

// Create inserts a budget after checking the name is free.
func (b *budgetUseCase) Create(ctx context.Context, name string) (*budgetDomain.Budget, error) {
	budget := &budgetDomain.Budget{Name: name}

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := b.ensureNameAvailable(ctx, name, 0); err != nil {
			return err
		}
		return b.budgetRepo.Create(ctx, budget)
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// List returns every budget ordered by id.
func (b *budgetUseCase) List(ctx context.Context) ([]*budgetDomain.Budget, error) {
	return b.budgetRepo.List(ctx)
}

// Get returns a single budget.
func (b *budgetUseCase) Get(ctx context.Context, id int64) (*budgetDomain.Budget, error) {
	return b.budgetRepo.GetByID(ctx, id)
}

// Rename changes the name of a budget.
func (b *budgetUseCase) Rename(ctx context.Context, id int64, newName string) (*budgetDomain.Budget, error) {
	var budget *budgetDomain.Budget

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		budget, err = b.budgetRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if budget.Name == newName {
			return nil
		}

		if err := b.ensureNameAvailable(ctx, newName, id); err != nil {
			return err
		}

		if err := b.budgetRepo.UpdateName(ctx, id, newName); err != nil {
			return err
		}

		budget.Name = newName
		return nil
	})
	if err != nil {
		return nil, err
	}

	return budget, nil
}

// Delete removes the items of a budget and then the budget, atomically.
func (b *budgetUseCase) Delete(ctx context.Context, id int64) (int64, error) {
	var removed int64

	err := b.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := b.budgetRepo.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := b.itemRepo.DeleteByBudgetID(ctx, id)
		if err != nil {
			return err
		}

		if err := b.budgetRepo.Delete(ctx, id); err != nil {
			return err
		}

		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// ensureNameAvailable fails with ErrDuplicateBudgetName when another budget
// (any id other than exceptID) already uses name.
func (b *budgetUseCase) ensureNameAvailable(ctx context.Context, name string, exceptID int64) error {
	existing, err := b.budgetRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, budgetDomain.ErrBudgetNotFound) {
			return nil
		}
		return err
	}

	if existing.ID != exceptID {
		return budgetDomain.ErrDuplicateBudgetName
	}
	return nil
}

// NewBudgetUseCase creates a new BudgetUseCase with the provided dependencies.
func NewBudgetUseCase(
	txManager database.TxManager,
	budgetRepo BudgetRepository,
	itemRepo ItemRepository,
) BudgetUseCase {
	return &budgetUseCase{
		txManager:  txManager,
		budgetRepo: budgetRepo,
		itemRepo:   itemRepo,
	}
}
