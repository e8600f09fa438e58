package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/allisson/budgets/internal/errors"
)

// Item is a budget entry whose description and amount are stored encrypted.
//
// EncryptedDescription and EncryptedAmount hold the tokens as persisted.
// Description and Amount hold the plaintext once decrypted. When a field cannot
// be decrypted its plaintext stays empty and the matching *Err field records
// why, so one damaged row does not hide the rest of a listing.
type Item struct {
	ID                   int64
	BudgetID             int64
	Description          string
	Amount               string
	EncryptedDescription string
	EncryptedAmount      string
	DescriptionErr       error
	AmountErr            error
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Readable reports whether both fields were decrypted.
func (i *Item) Readable() bool {
	return i.DescriptionErr == nil && i.AmountErr == nil
}

// AmountDecimal parses the decrypted amount.
//
// It returns AmountErr when the amount could not be decrypted, and
// ErrInvalidAmount when the plaintext is not a decimal number.
func (i *Item) AmountDecimal() (decimal.Decimal, error) {
	if i.AmountErr != nil {
		return decimal.Zero, i.AmountErr
	}

	d, err := decimal.NewFromString(strings.TrimSpace(i.Amount))
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "item %d", i.ID)
	}
	return d, nil
}

// ItemList is the decrypted content of one budget, ordered by item id.
type ItemList struct {
	Budget *Budget
	Items  []*Item
}

// Total sums every amount that parses as a decimal. Skipped counts the items
// left out because their amount was unreadable or not a number.
func (l *ItemList) Total() (sum decimal.Decimal, skipped int) {
	sum = decimal.Zero
	for _, item := range l.Items {
		amount, err := item.AmountDecimal()
		if err != nil {
			skipped++
			continue
		}
		sum = sum.Add(amount)
	}
	return sum, skipped
}

// UpdateItemInput selects the item fields to change. A nil field is left untouched.
type UpdateItemInput struct {
	Description *string
	Amount      *string
}

// IsEmpty reports whether no field was supplied.
func (in UpdateItemInput) IsEmpty() bool {
	return in.Description == nil && in.Amount == nil
}
