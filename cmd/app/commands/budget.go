package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fatih/color"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	budgetUsecase "github.com/allisson/budgets/internal/budget/usecase"
	customValidation "github.com/allisson/budgets/internal/validation"
)

// RunCreateBudget creates a budget with a unique name.
func RunCreateBudget(
	ctx context.Context,
	budgetUseCase budgetUsecase.BudgetUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	req := &CreateBudgetRequest{Name: name, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	budget, err := budgetUseCase.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	logger.Info("budget created", slog.Int64("budget_id", budget.ID))

	if format == FormatJSON {
		return writeJSON(writer, budgetJSON(budget))
	}
	printSuccess(writer, "Budget '%s' created (ID: %d)", budget.Name, budget.ID)
	return nil
}

// RunListBudgets lists every budget ordered by id.
func RunListBudgets(
	ctx context.Context,
	budgetUseCase budgetUsecase.BudgetUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	req := &FormatRequest{Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	budgets, err := budgetUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list budgets: %w", err)
	}

	logger.Debug("budgets listed", slog.Int("count", len(budgets)))

	if format == FormatJSON {
		result := make([]map[string]interface{}, 0, len(budgets))
		for _, budget := range budgets {
			result = append(result, budgetJSON(budget))
		}
		return writeJSON(writer, map[string]interface{}{"budgets": result})
	}
	outputBudgetsText(writer, budgets)
	return nil
}

// RunRenameBudget gives an existing budget a new unique name.
func RunRenameBudget(
	ctx context.Context,
	budgetUseCase budgetUsecase.BudgetUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id int64,
	name string,
	format string,
) error {
	req := &RenameBudgetRequest{ID: id, Name: name, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	budget, err := budgetUseCase.Rename(ctx, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename budget: %w", err)
	}

	logger.Info("budget renamed", slog.Int64("budget_id", budget.ID))

	if format == FormatJSON {
		return writeJSON(writer, budgetJSON(budget))
	}
	printSuccess(writer, "Budget %d renamed to '%s'", budget.ID, budget.Name)
	return nil
}

// RunDeleteBudget deletes a budget together with all of its items.
// Unless skipConfirm is set the user is asked to confirm on io.Reader first;
// declining leaves everything in place and is not an error.
func RunDeleteBudget(
	ctx context.Context,
	budgetUseCase budgetUsecase.BudgetUseCase,
	logger *slog.Logger,
	io IOTuple,
	id int64,
	skipConfirm bool,
	format string,
) error {
	req := &IDRequest{ID: id, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	budget, err := budgetUseCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get budget: %w", err)
	}

	if !skipConfirm {
		ok, err := confirm(io, fmt.Sprintf(
			"Are you sure you want to DELETE '%s' and ALL its encrypted items?", budget.Name,
		))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("budget deletion cancelled", slog.Int64("budget_id", id))
			if format == FormatJSON {
				return writeJSON(io.Writer, map[string]interface{}{
					"id":      id,
					"deleted": false,
				})
			}
			_, _ = fmt.Fprintf(io.Writer, "%s Deletion cancelled\n", color.YellowString("!"))
			return nil
		}
	}

	itemsDeleted, err := budgetUseCase.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	logger.Info("budget deleted",
		slog.Int64("budget_id", id),
		slog.Int64("items_deleted", itemsDeleted),
	)

	if format == FormatJSON {
		return writeJSON(io.Writer, map[string]interface{}{
			"id":            id,
			"deleted":       true,
			"items_deleted": itemsDeleted,
		})
	}
	printSuccess(io.Writer, "Budget '%s' deleted with %d item(s)", budget.Name, itemsDeleted)
	return nil
}

func budgetJSON(budget *budgetDomain.Budget) map[string]interface{} {
	return map[string]interface{}{
		"id":         budget.ID,
		"name":       budget.Name,
		"created_at": budget.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func outputBudgetsText(writer io.Writer, budgets []*budgetDomain.Budget) {
	if len(budgets) == 0 {
		_, _ = fmt.Fprintln(writer, "No budgets found.")
		return
	}

	_, _ = fmt.Fprintln(writer, "--- Available Budgets ---")
	for _, budget := range budgets {
		_, _ = fmt.Fprintf(writer, "ID: %d | Name: %s\n", budget.ID, budget.Name)
	}
	_, _ = fmt.Fprintln(writer, "-------------------------")
}
