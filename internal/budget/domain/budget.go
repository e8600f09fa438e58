package domain

import "time"

// Budget is a named container of items. Names are unique and compared exactly,
// so "Rent" and "rent" are different budgets.
type Budget struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
