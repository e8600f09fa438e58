package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fatih/color"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	budgetUsecase "github.com/allisson/budgets/internal/budget/usecase"
	customValidation "github.com/allisson/budgets/internal/validation"
)

// RunAddItem encrypts a description and amount and stores them as a new item of a budget.
func RunAddItem(
	ctx context.Context,
	itemUseCase budgetUsecase.ItemUseCase,
	logger *slog.Logger,
	writer io.Writer,
	budgetID int64,
	description string,
	amount string,
	format string,
) error {
	req := &AddItemRequest{BudgetID: budgetID, Description: description, Amount: amount, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	item, err := itemUseCase.Add(ctx, budgetID, description, strings.TrimSpace(amount))
	if err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}

	logger.Info("item added",
		slog.Int64("item_id", item.ID),
		slog.Int64("budget_id", item.BudgetID),
	)

	if format == FormatJSON {
		return writeJSON(writer, itemJSON(item))
	}
	printSuccess(writer, "Item %d added to budget %d", item.ID, item.BudgetID)
	return nil
}

// RunListItems decrypts and prints every item of a budget followed by the total.
// Items whose fields cannot be decrypted are still listed; they are left out of the total.
func RunListItems(
	ctx context.Context,
	itemUseCase budgetUsecase.ItemUseCase,
	logger *slog.Logger,
	writer io.Writer,
	budgetID int64,
	format string,
) error {
	req := &IDRequest{ID: budgetID, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	list, err := itemUseCase.List(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	total, skipped := list.Total()
	if skipped > 0 {
		logger.Warn("items left out of total",
			slog.Int64("budget_id", budgetID),
			slog.Int("skipped", skipped),
		)
	}

	if format == FormatJSON {
		items := make([]map[string]interface{}, 0, len(list.Items))
		for _, item := range list.Items {
			items = append(items, itemJSON(item))
		}
		return writeJSON(writer, map[string]interface{}{
			"budget":  budgetJSON(list.Budget),
			"items":   items,
			"total":   total.StringFixed(2),
			"skipped": skipped,
		})
	}
	outputItemsText(writer, list)
	return nil
}

// RunUpdateItem re-encrypts the supplied fields of an item. A nil description or
// amount keeps the stored value untouched.
func RunUpdateItem(
	ctx context.Context,
	itemUseCase budgetUsecase.ItemUseCase,
	logger *slog.Logger,
	writer io.Writer,
	itemID int64,
	description *string,
	amount *string,
	format string,
) error {
	req := &UpdateItemRequest{ID: itemID, Description: description, Amount: amount, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	input := budgetDomain.UpdateItemInput{Description: description}
	if amount != nil {
		trimmed := strings.TrimSpace(*amount)
		input.Amount = &trimmed
	}

	item, err := itemUseCase.Update(ctx, itemID, input)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	logger.Info("item updated",
		slog.Int64("item_id", item.ID),
		slog.Bool("description_changed", description != nil),
		slog.Bool("amount_changed", amount != nil),
	)

	if format == FormatJSON {
		return writeJSON(writer, map[string]interface{}{
			"id":                  item.ID,
			"budget_id":           item.BudgetID,
			"description_changed": description != nil,
			"amount_changed":      amount != nil,
		})
	}
	if input.IsEmpty() {
		_, _ = fmt.Fprintf(writer, "%s Nothing to update for item %d\n", color.YellowString("!"), item.ID)
		return nil
	}
	printSuccess(writer, "Item %d updated", item.ID)
	return nil
}

// RunDeleteItem removes a single item.
func RunDeleteItem(
	ctx context.Context,
	itemUseCase budgetUsecase.ItemUseCase,
	logger *slog.Logger,
	writer io.Writer,
	itemID int64,
	format string,
) error {
	req := &IDRequest{ID: itemID, Format: format}
	if err := req.Validate(); err != nil {
		return customValidation.WrapValidationError(err)
	}

	if err := itemUseCase.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	logger.Info("item deleted", slog.Int64("item_id", itemID))

	if format == FormatJSON {
		return writeJSON(writer, map[string]interface{}{
			"id":      itemID,
			"deleted": true,
		})
	}
	printSuccess(writer, "Item %d deleted", itemID)
	return nil
}

func itemJSON(item *budgetDomain.Item) map[string]interface{} {
	result := map[string]interface{}{
		"id":          item.ID,
		"budget_id":   item.BudgetID,
		"description": item.Description,
		"amount":      item.Amount,
		"created_at":  item.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":  item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if item.DescriptionErr != nil {
		result["description"] = nil
		result["description_error"] = item.DescriptionErr.Error()
	}
	if item.AmountErr != nil {
		result["amount"] = nil
		result["amount_error"] = item.AmountErr.Error()
	}
	return result
}

func outputItemsText(writer io.Writer, list *budgetDomain.ItemList) {
	_, _ = fmt.Fprintf(writer, ">>> Managing: %s <<<\n", list.Budget.Name)
	_, _ = fmt.Fprintf(writer, "%-4s | %-30s | %10s\n", "ID", "Description", "Amount")
	_, _ = fmt.Fprintln(writer, strings.Repeat("-", 50))

	for _, item := range list.Items {
		description := fmt.Sprintf("%-30s", item.Description)
		if item.DescriptionErr != nil {
			description = color.RedString("%-30s", DecryptionErrorMarker)
		}

		amount := color.RedString("%10s", "Error")
		if d, err := item.AmountDecimal(); err == nil {
			amount = fmt.Sprintf("%10s", d.StringFixed(2))
		}

		_, _ = fmt.Fprintf(writer, "%-4d | %s | %s\n", item.ID, description, amount)
	}

	total, _ := list.Total()
	_, _ = fmt.Fprintln(writer, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(writer, "%-4s | %-30s | %10s\n", "", "TOTAL", total.StringFixed(2))
}
