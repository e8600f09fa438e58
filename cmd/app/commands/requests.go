package commands

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/budgets/internal/validation"
)

var formatRule = validation.In(FormatText, FormatJSON).Error("must be 'text' or 'json'")

var budgetNameRules = []validation.Rule{
	validation.Required,
	customValidation.ValidUTF8,
	customValidation.NotBlank,
	customValidation.MaxRunes(customValidation.MaxNameLength),
}

var amountRules = []validation.Rule{
	validation.Required,
	customValidation.NotBlank,
	customValidation.Decimal,
}

var idRules = []validation.Rule{
	validation.Required,
	validation.Min(int64(1)),
}

// FormatRequest carries only the output format.
type FormatRequest struct {
	Format string
}

// Validate checks if the output format is supported.
func (r *FormatRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Format, formatRule),
	)
}

// CreateBudgetRequest contains the parameters for creating a budget.
type CreateBudgetRequest struct {
	Name   string
	Format string
}

// Validate checks if the create budget request is valid.
func (r *CreateBudgetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, budgetNameRules...),
		validation.Field(&r.Format, formatRule),
	)
}

// RenameBudgetRequest contains the parameters for renaming a budget.
type RenameBudgetRequest struct {
	ID     int64
	Name   string
	Format string
}

// Validate checks if the rename budget request is valid.
func (r *RenameBudgetRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, idRules...),
		validation.Field(&r.Name, budgetNameRules...),
		validation.Field(&r.Format, formatRule),
	)
}

// IDRequest identifies a single budget or item.
type IDRequest struct {
	ID     int64
	Format string
}

// Validate checks if the id is positive.
func (r *IDRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, idRules...),
		validation.Field(&r.Format, formatRule),
	)
}

// AddItemRequest contains the parameters for adding an item to a budget.
type AddItemRequest struct {
	BudgetID    int64
	Description string
	Amount      string
	Format      string
}

// Validate checks if the add item request is valid. The description may be
// empty but must be valid UTF-8.
func (r *AddItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.BudgetID, idRules...),
		validation.Field(&r.Description, customValidation.ValidUTF8),
		validation.Field(&r.Amount, amountRules...),
		validation.Field(&r.Format, formatRule),
	)
}

// UpdateItemRequest contains the parameters for updating an item.
// A nil field is left unchanged.
type UpdateItemRequest struct {
	ID          int64
	Description *string
	Amount      *string
	Format      string
}

// Validate checks if the update item request is valid.
func (r *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, idRules...),
		validation.Field(&r.Description, customValidation.ValidUTF8),
		validation.Field(&r.Amount, validation.When(r.Amount != nil, amountRules...)),
		validation.Field(&r.Format, formatRule),
	)
}
