package usecase

import (
	"context"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	cryptoService "github.com/allisson/budgets/internal/crypto/service"
	"github.com/allisson/budgets/internal/database"
	apperrors "github.com/allisson/budgets/internal/errors"
)

// itemUseCase implements the ItemUseCase interface.
type itemUseCase struct {
	txManager   database.TxManager
	budgetRepo  BudgetRepository
	itemRepo    ItemRepository
	fieldCipher cryptoService.FieldCipher
}

// Add encrypts description and amount independently and stores a new item.
func (i *itemUseCase) Add(
	ctx context.Context,
	budgetID int64,
	description, amount string,
) (*budgetDomain.Item, error) {
	encryptedDescription, err := i.fieldCipher.Encrypt(description)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt description")
	}

	encryptedAmount, err := i.fieldCipher.Encrypt(amount)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt amount")
	}

	item := &budgetDomain.Item{
		BudgetID:             budgetID,
		Description:          description,
		Amount:               amount,
		EncryptedDescription: encryptedDescription,
		EncryptedAmount:      encryptedAmount,
	}

	err = i.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := i.budgetRepo.GetByID(ctx, budgetID); err != nil {
			return err
		}
		return i.itemRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// List returns the decrypted items of a budget.
func (i *itemUseCase) List(ctx context.Context, budgetID int64) (*budgetDomain.ItemList, error) {
	budget, err := i.budgetRepo.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	items, err := i.itemRepo.ListByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		i.decryptItem(item)
	}

	return &budgetDomain.ItemList{Budget: budget, Items: items}, nil
}

// Update replaces the supplied fields of an item with fresh ciphertext.
func (i *itemUseCase) Update(
	ctx context.Context,
	itemID int64,
	input budgetDomain.UpdateItemInput,
) (*budgetDomain.Item, error) {
	var item *budgetDomain.Item

	err := i.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		item, err = i.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		if input.IsEmpty() {
			return nil
		}

		if input.Description != nil {
			token, err := i.fieldCipher.Encrypt(*input.Description)
			if err != nil {
				return apperrors.Wrap(err, "failed to encrypt description")
			}
			item.EncryptedDescription = token
		}

		if input.Amount != nil {
			token, err := i.fieldCipher.Encrypt(*input.Amount)
			if err != nil {
				return apperrors.Wrap(err, "failed to encrypt amount")
			}
			item.EncryptedAmount = token
		}

		return i.itemRepo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	i.decryptItem(item)
	return item, nil
}

// Delete removes exactly one item.
func (i *itemUseCase) Delete(ctx context.Context, itemID int64) error {
	return i.itemRepo.Delete(ctx, itemID)
}

// decryptItem fills the plaintext fields of item, recording per-field failures.
func (i *itemUseCase) decryptItem(item *budgetDomain.Item) {
	description, err := i.fieldCipher.Decrypt(item.EncryptedDescription)
	if err != nil {
		item.Description = ""
		item.DescriptionErr = apperrors.Wrapf(err, "item %d description", item.ID)
	} else {
		item.Description = description
		item.DescriptionErr = nil
	}

	amount, err := i.fieldCipher.Decrypt(item.EncryptedAmount)
	if err != nil {
		item.Amount = ""
		item.AmountErr = apperrors.Wrapf(err, "item %d amount", item.ID)
	} else {
		item.Amount = amount
		item.AmountErr = nil
	}
}

// NewItemUseCase creates a new ItemUseCase with the provided dependencies.
func NewItemUseCase(
	txManager database.TxManager,
	budgetRepo BudgetRepository,
	itemRepo ItemRepository,
	fieldCipher cryptoService.FieldCipher,
) ItemUseCase {
	return &itemUseCase{
		txManager:   txManager,
		budgetRepo:  budgetRepo,
		itemRepo:    itemRepo,
		fieldCipher: fieldCipher,
	}
}
