package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	"github.com/allisson/budgets/internal/database"
	apperrors "github.com/allisson/budgets/internal/errors"
)

// SQLiteItemRepository implements Item persistence for SQLite databases.
// Only the Encrypted* fields of an item are read or written.
type SQLiteItemRepository struct {
	db *sql.DB
}

// Create inserts a new item and sets its ID, CreatedAt and UpdatedAt.
func (s *SQLiteItemRepository) Create(ctx context.Context, item *budgetDomain.Item) error {
	querier := database.GetTx(ctx, s.db)

	now := time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO items (budget_id, description, amount, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	res, err := querier.ExecContext(
		ctx,
		query,
		item.BudgetID,
		item.EncryptedDescription,
		item.EncryptedAmount,
		now.Unix(),
		now.Unix(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return budgetDomain.ErrBudgetNotFound
		}
		return apperrors.Wrap(err, "failed to create item")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read item id")
	}

	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

// GetByID retrieves an item by its id.
func (s *SQLiteItemRepository) GetByID(ctx context.Context, id int64) (*budgetDomain.Item, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, budget_id, description, amount, created_at, updated_at
			  FROM items
			  WHERE id = ?`

	var item budgetDomain.Item
	var createdAt, updatedAt int64
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.BudgetID,
		&item.EncryptedDescription,
		&item.EncryptedAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetDomain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get item")
	}

	item.CreatedAt = fromUnix(createdAt)
	item.UpdatedAt = fromUnix(updatedAt)
	return &item, nil
}

// ListByBudgetID retrieves the items of a budget ordered by id ascending.
func (s *SQLiteItemRepository) ListByBudgetID(ctx context.Context, budgetID int64) ([]*budgetDomain.Item, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, budget_id, description, amount, created_at, updated_at
			  FROM items
			  WHERE budget_id = ?
			  ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*budgetDomain.Item, 0)
	for rows.Next() {
		var item budgetDomain.Item
		var createdAt, updatedAt int64
		if err := rows.Scan(
			&item.ID,
			&item.BudgetID,
			&item.EncryptedDescription,
			&item.EncryptedAmount,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan item")
		}
		item.CreatedAt = fromUnix(createdAt)
		item.UpdatedAt = fromUnix(updatedAt)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate items")
	}

	return items, nil
}

// Update writes the stored description and amount of an item and bumps UpdatedAt.
func (s *SQLiteItemRepository) Update(ctx context.Context, item *budgetDomain.Item) error {
	querier := database.GetTx(ctx, s.db)

	now := time.Now().UTC().Truncate(time.Second)
	query := `UPDATE items SET description = ?, amount = ?, updated_at = ? WHERE id = ?`

	res, err := querier.ExecContext(
		ctx,
		query,
		item.EncryptedDescription,
		item.EncryptedAmount,
		now.Unix(),
		item.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update item")
	}

	if err := requireAffected(res, budgetDomain.ErrItemNotFound); err != nil {
		return err
	}

	item.UpdatedAt = now
	return nil
}

// Delete removes a single item.
func (s *SQLiteItemRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM items WHERE id = ?`

	res, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete item")
	}

	return requireAffected(res, budgetDomain.ErrItemNotFound)
}

// DeleteByBudgetID removes every item of a budget and returns how many were removed.
func (s *SQLiteItemRepository) DeleteByBudgetID(ctx context.Context, budgetID int64) (int64, error) {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM items WHERE budget_id = ?`

	res, err := querier.ExecContext(ctx, query, budgetID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete budget items")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return n, nil
}

// NewSQLiteItemRepository creates a new SQLite Item repository instance.
func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}
