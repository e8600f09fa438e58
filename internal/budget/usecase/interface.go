// Package usecase defines the interfaces and implementations for budget management use cases.
// Use cases orchestrate repositories, the transaction manager and the field cipher so that
// item descriptions and amounts only ever reach storage encrypted.
package usecase

import (
	"context"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
)

// BudgetRepository defines the interface for Budget persistence operations.
type BudgetRepository interface {
	Create(ctx context.Context, budget *budgetDomain.Budget) error
	GetByID(ctx context.Context, id int64) (*budgetDomain.Budget, error)
	GetByName(ctx context.Context, name string) (*budgetDomain.Budget, error)
	List(ctx context.Context) ([]*budgetDomain.Budget, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// ItemRepository defines the interface for Item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *budgetDomain.Item) error
	GetByID(ctx context.Context, id int64) (*budgetDomain.Item, error)
	ListByBudgetID(ctx context.Context, budgetID int64) ([]*budgetDomain.Item, error)
	Update(ctx context.Context, item *budgetDomain.Item) error
	Delete(ctx context.Context, id int64) error
	DeleteByBudgetID(ctx context.Context, budgetID int64) (int64, error)
}

// BudgetUseCase defines the interface for budget management business logic.
type BudgetUseCase interface {
	Create(ctx context.Context, name string) (*budgetDomain.Budget, error)
	List(ctx context.Context) ([]*budgetDomain.Budget, error)
	Get(ctx context.Context, id int64) (*budgetDomain.Budget, error)
	// Rename changes a budget name. Renaming a budget to its current name succeeds without a write.
	Rename(ctx context.Context, id int64, newName string) (*budgetDomain.Budget, error)
	// Delete removes a budget and all of its items in one transaction and
	// returns how many items were removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// ItemUseCase defines the interface for item management business logic.
type ItemUseCase interface {
	Add(ctx context.Context, budgetID int64, description, amount string) (*budgetDomain.Item, error)
	// List decrypts every item of a budget. A field that fails to decrypt is
	// reported on its item and does not fail the call.
	List(ctx context.Context, budgetID int64) (*budgetDomain.ItemList, error)
	// Update re-encrypts only the supplied fields. The stored token of an
	// untouched field is left byte-for-byte as it was.
	Update(ctx context.Context, itemID int64, input budgetDomain.UpdateItemInput) (*budgetDomain.Item, error)
	Delete(ctx context.Context, itemID int64) error
}
