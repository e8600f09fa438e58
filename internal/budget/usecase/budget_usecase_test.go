package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	budgetRepository "github.com/allisson/budgets/internal/budget/repository"
	"github.com/allisson/budgets/internal/database"
	apperrors "github.com/allisson/budgets/internal/errors"
	"github.com/allisson/budgets/internal/testutil"
)

func TestBudgetUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AssignsID", func(t *testing.T) {
		s := newTestStack(t)

		budget, err := s.budgets.Create(ctx, "Groceries")

		require.NoError(t, err)
		assert.Positive(t, budget.ID)
		assert.Equal(t, "Groceries", budget.Name)
	})

	t.Run("Error_DuplicateNameLeavesCountUnchanged", func(t *testing.T) {
		s := newTestStack(t)

		_, err := s.budgets.Create(ctx, "X")
		require.NoError(t, err)

		_, err = s.budgets.Create(ctx, "X")

		assert.ErrorIs(t, err, budgetDomain.ErrDuplicateBudgetName)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, 1, testutil.CountRows(t, s.db, "budgets"))
	})

	t.Run("Success_NamesAreCaseSensitive", func(t *testing.T) {
		s := newTestStack(t)

		_, err := s.budgets.Create(ctx, "Rent")
		require.NoError(t, err)
		_, err = s.budgets.Create(ctx, "rent")

		assert.NoError(t, err)
	})
}

func TestBudgetUseCase_ListAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStack(t)

	budgets, err := s.budgets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	first, err := s.budgets.Create(ctx, "Travel")
	require.NoError(t, err)
	second, err := s.budgets.Create(ctx, "Books")
	require.NoError(t, err)

	budgets, err = s.budgets.List(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, first.ID, budgets[0].ID)
	assert.Equal(t, second.ID, budgets[1].ID)

	got, err := s.budgets.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Books", got.Name)

	_, err = s.budgets.Get(ctx, second.ID+100)
	assert.ErrorIs(t, err, budgetDomain.ErrBudgetNotFound)
}

func TestBudgetUseCase_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s := newTestStack(t)
		budget, err := s.budgets.Create(ctx, "Food")
		require.NoError(t, err)

		renamed, err := s.budgets.Rename(ctx, budget.ID, "Groceries")

		require.NoError(t, err)
		assert.Equal(t, budget.ID, renamed.ID)
		assert.Equal(t, "Groceries", renamed.Name)

		got, err := s.budgets.Get(ctx, budget.ID)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", got.Name)
	})

	t.Run("Success_SameNameIsNoOp", func(t *testing.T) {
		s := newTestStack(t)
		budget, err := s.budgets.Create(ctx, "Food")
		require.NoError(t, err)

		renamed, err := s.budgets.Rename(ctx, budget.ID, "Food")

		require.NoError(t, err)
		assert.Equal(t, "Food", renamed.Name)
	})

	t.Run("Error_NameTaken", func(t *testing.T) {
		s := newTestStack(t)
		budget, err := s.budgets.Create(ctx, "Food")
		require.NoError(t, err)
		_, err = s.budgets.Create(ctx, "Rent")
		require.NoError(t, err)

		_, err = s.budgets.Rename(ctx, budget.ID, "Rent")

		assert.ErrorIs(t, err, budgetDomain.ErrDuplicateBudgetName)
		got, err := s.budgets.Get(ctx, budget.ID)
		require.NoError(t, err)
		assert.Equal(t, "Food", got.Name)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		s := newTestStack(t)

		_, err := s.budgets.Rename(ctx, 42, "Anything")

		assert.ErrorIs(t, err, budgetDomain.ErrBudgetNotFound)
	})
}

func TestBudgetUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CascadesItems", func(t *testing.T) {
		s := newTestStack(t)
		budget, err := s.budgets.Create(ctx, "Groceries")
		require.NoError(t, err)
		other, err := s.budgets.Create(ctx, "Rent")
		require.NoError(t, err)

		for _, d := range []string{"Milk", "Bread", "Eggs"} {
			_, err := s.items.Add(ctx, budget.ID, d, "1.00")
			require.NoError(t, err)
		}
		_, err = s.items.Add(ctx, other.ID, "March", "900")
		require.NoError(t, err)

		removed, err := s.budgets.Delete(ctx, budget.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
		assert.Equal(t, 1, testutil.CountRows(t, s.db, "items"))
		assert.Equal(t, 1, testutil.CountRows(t, s.db, "budgets"))

		_, err = s.items.List(ctx, budget.ID)
		assert.ErrorIs(t, err, budgetDomain.ErrBudgetNotFound)
	})

	t.Run("Success_EmptyBudget", func(t *testing.T) {
		s := newTestStack(t)
		budget, err := s.budgets.Create(ctx, "Empty")
		require.NoError(t, err)

		removed, err := s.budgets.Delete(ctx, budget.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), removed)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		s := newTestStack(t)

		_, err := s.budgets.Delete(ctx, 7)

		assert.ErrorIs(t, err, budgetDomain.ErrBudgetNotFound)
	})
}

func TestBudgetUseCase_Delete_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	uc := NewBudgetUseCase(
		database.NewTxManager(db),
		budgetRepository.NewSQLiteBudgetRepository(db),
		budgetRepository.NewSQLiteItemRepository(db),
	)

	dbErr := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, created_at FROM budgets WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(1, "Groceries", 1700000000))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM items WHERE budget_id = ?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM budgets WHERE id = ?")).
		WithArgs(int64(1)).
		WillReturnError(dbErr)
	mock.ExpectRollback()

	removed, err := uc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, int64(0), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBudgetUseCase_Delete_RollsBackOnRealDatabase(t *testing.T) {
	ctx := context.Background()
	s := newTestStack(t)

	budget, err := s.budgets.Create(ctx, "Groceries")
	require.NoError(t, err)
	_, err = s.items.Add(ctx, budget.ID, "Milk", "3.50")
	require.NoError(t, err)

	txManager := database.NewTxManager(s.db)
	itemRepo := budgetRepository.NewSQLiteItemRepository(s.db)
	failing := NewBudgetUseCase(txManager, &failingDeleteBudgetRepo{
		BudgetRepository: budgetRepository.NewSQLiteBudgetRepository(s.db),
	}, itemRepo)

	_, err = failing.Delete(ctx, budget.ID)

	require.Error(t, err)
	assert.Equal(t, 1, testutil.CountRows(t, s.db, "items"))
	assert.Equal(t, 1, testutil.CountRows(t, s.db, "budgets"))
}

// failingDeleteBudgetRepo fails every budget delete after the items are already gone.
type failingDeleteBudgetRepo struct {
	BudgetRepository
}

func (f *failingDeleteBudgetRepo) Delete(ctx context.Context, id int64) error {
	return errors.New("simulated failure")
}
