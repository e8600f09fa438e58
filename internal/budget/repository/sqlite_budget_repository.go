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

// SQLiteBudgetRepository implements Budget persistence for SQLite databases.
type SQLiteBudgetRepository struct {
	db *sql.DB
}

// Create inserts a new budget and sets its ID and CreatedAt.
func (s *SQLiteBudgetRepository) Create(ctx context.Context, budget *budgetDomain.Budget) error {
	querier := database.GetTx(ctx, s.db)

	createdAt := time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO budgets (name, created_at) VALUES (?, ?)`

	res, err := querier.ExecContext(ctx, query, budget.Name, createdAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return budgetDomain.ErrDuplicateBudgetName
		}
		return apperrors.Wrap(err, "failed to create budget")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read budget id")
	}

	budget.ID = id
	budget.CreatedAt = createdAt
	return nil
}

// GetByID retrieves a budget by its id.
func (s *SQLiteBudgetRepository) GetByID(ctx context.Context, id int64) (*budgetDomain.Budget, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, created_at FROM budgets WHERE id = ?`

	return scanBudget(querier.QueryRowContext(ctx, query, id))
}

// GetByName retrieves a budget by its exact name.
func (s *SQLiteBudgetRepository) GetByName(ctx context.Context, name string) (*budgetDomain.Budget, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, created_at FROM budgets WHERE name = ?`

	return scanBudget(querier.QueryRowContext(ctx, query, name))
}

// List retrieves every budget ordered by id ascending.
func (s *SQLiteBudgetRepository) List(ctx context.Context) ([]*budgetDomain.Budget, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, name, created_at FROM budgets ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list budgets")
	}
	defer func() {
		_ = rows.Close()
	}()

	budgets := make([]*budgetDomain.Budget, 0)
	for rows.Next() {
		var budget budgetDomain.Budget
		var createdAt int64
		if err := rows.Scan(&budget.ID, &budget.Name, &createdAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan budget")
		}
		budget.CreatedAt = fromUnix(createdAt)
		budgets = append(budgets, &budget)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate budgets")
	}

	return budgets, nil
}

// UpdateName renames a budget.
func (s *SQLiteBudgetRepository) UpdateName(ctx context.Context, id int64, name string) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE budgets SET name = ? WHERE id = ?`

	res, err := querier.ExecContext(ctx, query, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return budgetDomain.ErrDuplicateBudgetName
		}
		return apperrors.Wrap(err, "failed to rename budget")
	}

	return requireAffected(res, budgetDomain.ErrBudgetNotFound)
}

// Delete removes a budget row. Items must be removed first by the caller;
// the schema cascade only covers rows left behind.
func (s *SQLiteBudgetRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, s.db)

	query := `DELETE FROM budgets WHERE id = ?`

	res, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete budget")
	}

	return requireAffected(res, budgetDomain.ErrBudgetNotFound)
}

func scanBudget(row *sql.Row) (*budgetDomain.Budget, error) {
	var budget budgetDomain.Budget
	var createdAt int64

	err := row.Scan(&budget.ID, &budget.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budgetDomain.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get budget")
	}

	budget.CreatedAt = fromUnix(createdAt)
	return &budget, nil
}

// requireAffected returns notFound when the statement touched no row.
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// NewSQLiteBudgetRepository creates a new SQLite Budget repository instance.
func NewSQLiteBudgetRepository(db *sql.DB) *SQLiteBudgetRepository {
	return &SQLiteBudgetRepository{db: db}
}
