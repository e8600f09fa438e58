package usecase

import (
	"context"
	"time"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	"github.com/allisson/budgets/internal/metrics"
)

// budgetUseCaseWithMetrics decorates BudgetUseCase with metrics instrumentation.
type budgetUseCaseWithMetrics struct {
	next    BudgetUseCase
	metrics metrics.BusinessMetrics
}

// NewBudgetUseCaseWithMetrics wraps a BudgetUseCase with metrics recording.
func NewBudgetUseCaseWithMetrics(useCase BudgetUseCase, m metrics.BusinessMetrics) BudgetUseCase {
	return &budgetUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *budgetUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	recordOperation(ctx, b.metrics, "budget", operation, start, err)
}

// Create records metrics for budget creation.
func (b *budgetUseCaseWithMetrics) Create(ctx context.Context, name string) (*budgetDomain.Budget, error) {
	start := time.Now()
	budget, err := b.next.Create(ctx, name)
	b.record(ctx, "budget_create", start, err)
	return budget, err
}

// List records metrics for budget listing.
func (b *budgetUseCaseWithMetrics) List(ctx context.Context) ([]*budgetDomain.Budget, error) {
	start := time.Now()
	budgets, err := b.next.List(ctx)
	b.record(ctx, "budget_list", start, err)
	return budgets, err
}

// Get records metrics for budget retrieval.
func (b *budgetUseCaseWithMetrics) Get(ctx context.Context, id int64) (*budgetDomain.Budget, error) {
	start := time.Now()
	budget, err := b.next.Get(ctx, id)
	b.record(ctx, "budget_get", start, err)
	return budget, err
}

// Rename records metrics for budget renames.
func (b *budgetUseCaseWithMetrics) Rename(
	ctx context.Context,
	id int64,
	newName string,
) (*budgetDomain.Budget, error) {
	start := time.Now()
	budget, err := b.next.Rename(ctx, id, newName)
	b.record(ctx, "budget_rename", start, err)
	return budget, err
}

// Delete records metrics for budget deletion.
func (b *budgetUseCaseWithMetrics) Delete(ctx context.Context, id int64) (int64, error) {
	start := time.Now()
	removed, err := b.next.Delete(ctx, id)
	b.record(ctx, "budget_delete", start, err)
	return removed, err
}

// itemUseCaseWithMetrics decorates ItemUseCase with metrics instrumentation.
type itemUseCaseWithMetrics struct {
	next    ItemUseCase
	metrics metrics.BusinessMetrics
}

// NewItemUseCaseWithMetrics wraps an ItemUseCase with metrics recording.
// Listing and updating also count every field that failed to decrypt.
func NewItemUseCaseWithMetrics(useCase ItemUseCase, m metrics.BusinessMetrics) ItemUseCase {
	return &itemUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (i *itemUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	recordOperation(ctx, i.metrics, "item", operation, start, err)
}

func (i *itemUseCaseWithMetrics) recordDecryptionFailures(ctx context.Context, item *budgetDomain.Item) {
	if item.DescriptionErr != nil {
		i.metrics.RecordDecryptionFailure(ctx, "description")
	}
	if item.AmountErr != nil {
		i.metrics.RecordDecryptionFailure(ctx, "amount")
	}
}

// Add records metrics for item creation.
func (i *itemUseCaseWithMetrics) Add(
	ctx context.Context,
	budgetID int64,
	description, amount string,
) (*budgetDomain.Item, error) {
	start := time.Now()
	item, err := i.next.Add(ctx, budgetID, description, amount)
	i.record(ctx, "item_add", start, err)
	return item, err
}

// List records metrics for item listing.
func (i *itemUseCaseWithMetrics) List(ctx context.Context, budgetID int64) (*budgetDomain.ItemList, error) {
	start := time.Now()
	list, err := i.next.List(ctx, budgetID)
	i.record(ctx, "item_list", start, err)
	if list != nil {
		for _, item := range list.Items {
			i.recordDecryptionFailures(ctx, item)
		}
	}
	return list, err
}

// Update records metrics for item updates.
func (i *itemUseCaseWithMetrics) Update(
	ctx context.Context,
	itemID int64,
	input budgetDomain.UpdateItemInput,
) (*budgetDomain.Item, error) {
	start := time.Now()
	item, err := i.next.Update(ctx, itemID, input)
	i.record(ctx, "item_update", start, err)
	if item != nil {
		i.recordDecryptionFailures(ctx, item)
	}
	return item, err
}

// Delete records metrics for item deletion.
func (i *itemUseCaseWithMetrics) Delete(ctx context.Context, itemID int64) error {
	start := time.Now()
	err := i.next.Delete(ctx, itemID)
	i.record(ctx, "item_delete", start, err)
	return err
}

// recordOperation records the operation counter and duration with a success or error status.
func recordOperation(
	ctx context.Context,
	m metrics.BusinessMetrics,
	domain, operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.RecordOperation(ctx, domain, operation, status)
	m.RecordDuration(ctx, domain, operation, time.Since(start), status)
}
