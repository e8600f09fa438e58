package usecase

import (
	"crypto/rand"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	budgetRepository "github.com/allisson/budgets/internal/budget/repository"
	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
	cryptoService "github.com/allisson/budgets/internal/crypto/service"
	"github.com/allisson/budgets/internal/database"
	"github.com/allisson/budgets/internal/testutil"
)

// testStack wires the use cases over a migrated temporary SQLite database.
type testStack struct {
	db          *sql.DB
	fieldCipher cryptoService.FieldCipher
	budgets     BudgetUseCase
	items       ItemUseCase
}

func newTestKey(t *testing.T) cryptoDomain.Key {
	t.Helper()

	b := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(b)
	require.NoError(t, err)

	key, err := cryptoDomain.NewKey(b)
	require.NoError(t, err)
	return key
}

func newTestFieldCipher(t *testing.T, key cryptoDomain.Key) cryptoService.FieldCipher {
	t.Helper()

	fc, err := cryptoService.NewFieldCipher(cryptoService.NewAEADManager(), key, cryptoDomain.AESGCM)
	require.NoError(t, err)
	return fc
}

func newTestStackWithDB(t *testing.T, db *sql.DB, key cryptoDomain.Key) *testStack {
	t.Helper()

	txManager := database.NewTxManager(db)
	budgetRepo := budgetRepository.NewSQLiteBudgetRepository(db)
	itemRepo := budgetRepository.NewSQLiteItemRepository(db)
	fc := newTestFieldCipher(t, key)

	return &testStack{
		db:          db,
		fieldCipher: fc,
		budgets:     NewBudgetUseCase(txManager, budgetRepo, itemRepo),
		items:       NewItemUseCase(txManager, budgetRepo, itemRepo, fc),
	}
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	return newTestStackWithDB(t, testutil.SetupSQLiteDB(t), newTestKey(t))
}

func strPtr(s string) *string {
	return &s
}
