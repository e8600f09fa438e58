package app

import (
	"context"
	"fmt"
	"sync"

	budgetRepository "github.com/allisson/budgets/internal/budget/repository"
	budgetUsecase "github.com/allisson/budgets/internal/budget/usecase"
)

// budgetComponents groups the lazily built budget repositories and use cases.
type budgetComponents struct {
	budgetRepo    budgetUsecase.BudgetRepository
	itemRepo      budgetUsecase.ItemRepository
	budgetUseCase budgetUsecase.BudgetUseCase
	itemUseCase   budgetUsecase.ItemUseCase

	budgetRepoInit    sync.Once
	itemRepoInit      sync.Once
	budgetUseCaseInit sync.Once
	itemUseCaseInit   sync.Once
}

// BudgetRepository returns the budget repository instance.
func (c *Container) BudgetRepository() (budgetUsecase.BudgetRepository, error) {
	var err error
	c.budget.budgetRepoInit.Do(func() {
		c.budget.budgetRepo, err = c.initBudgetRepository()
		if err != nil {
			c.initErrors["budgetRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["budgetRepo"]; exists {
		return nil, storedErr
	}
	return c.budget.budgetRepo, nil
}

// ItemRepository returns the item repository instance.
func (c *Container) ItemRepository() (budgetUsecase.ItemRepository, error) {
	var err error
	c.budget.itemRepoInit.Do(func() {
		c.budget.itemRepo, err = c.initItemRepository()
		if err != nil {
			c.initErrors["itemRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["itemRepo"]; exists {
		return nil, storedErr
	}
	return c.budget.itemRepo, nil
}

// BudgetUseCase returns the budget use case instance.
func (c *Container) BudgetUseCase() (budgetUsecase.BudgetUseCase, error) {
	var err error
	c.budget.budgetUseCaseInit.Do(func() {
		c.budget.budgetUseCase, err = c.initBudgetUseCase()
		if err != nil {
			c.initErrors["budgetUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["budgetUseCase"]; exists {
		return nil, storedErr
	}
	return c.budget.budgetUseCase, nil
}

// ItemUseCase returns the item use case instance. Building it loads the key.
func (c *Container) ItemUseCase(ctx context.Context) (budgetUsecase.ItemUseCase, error) {
	var err error
	c.budget.itemUseCaseInit.Do(func() {
		c.budget.itemUseCase, err = c.initItemUseCase(ctx)
		if err != nil {
			c.initErrors["itemUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["itemUseCase"]; exists {
		return nil, storedErr
	}
	return c.budget.itemUseCase, nil
}

// initBudgetRepository creates the budget repository instance.
func (c *Container) initBudgetRepository() (budgetUsecase.BudgetRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for budget repository: %w", err)
	}
	return budgetRepository.NewSQLiteBudgetRepository(db), nil
}

// initItemRepository creates the item repository instance.
func (c *Container) initItemRepository() (budgetUsecase.ItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for item repository: %w", err)
	}
	return budgetRepository.NewSQLiteItemRepository(db), nil
}

// initBudgetUseCase creates the budget use case with all its dependencies.
func (c *Container) initBudgetUseCase() (budgetUsecase.BudgetUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for budget use case: %w", err)
	}

	budgetRepo, err := c.BudgetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget repository for budget use case: %w", err)
	}

	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for budget use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for budget use case: %w", err)
	}

	useCase := budgetUsecase.NewBudgetUseCase(txManager, budgetRepo, itemRepo)
	return budgetUsecase.NewBudgetUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initItemUseCase creates the item use case with all its dependencies.
func (c *Container) initItemUseCase(ctx context.Context) (budgetUsecase.ItemUseCase, error) {
	fieldCipher, err := c.FieldCipher(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for item use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for item use case: %w", err)
	}

	budgetRepo, err := c.BudgetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget repository for item use case: %w", err)
	}

	itemRepo, err := c.ItemRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get item repository for item use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for item use case: %w", err)
	}

	useCase := budgetUsecase.NewItemUseCase(txManager, budgetRepo, itemRepo, fieldCipher)
	return budgetUsecase.NewItemUseCaseWithMetrics(useCase, businessMetrics), nil
}
