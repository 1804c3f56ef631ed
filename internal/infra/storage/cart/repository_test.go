package cart

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
)

func TestRepository_ListForUpdate_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT c.id, c.user_id, c.item_id, c.wash_category_id, c.quantity, i.price, w.extra_per_item FROM cart_items c JOIN items i ON i.id = c.item_id JOIN wash_categories w ON w.id = c.wash_category_id WHERE c.user_id = \$1 ORDER BY c.id ASC FOR UPDATE OF c`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "wash_category_id", "quantity", "price", "extra_per_item"}).
			AddRow(1, 7, 1, 1, 2, "10.00", "3.00").
			AddRow(2, 7, 2, 2, 1, "5.00", nil))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	lines, err := repo.ListForUpdate(dbmetrics.WithTx(context.Background(), tx), 7)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	require.Len(t, lines, 2)
	assert.True(t, lines[0].ToOrderDetail().SubtotalPrice.Equal(decimal.NewFromInt(26)))
	assert.True(t, lines[1].WashCategoryExtra.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListForUpdate_NoLockOutsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`ORDER BY c.id ASC$`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "item_id", "wash_category_id", "quantity", "price", "extra_per_item"}))

	lines, err := repo.ListForUpdate(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRepository_ClearAndResetTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE users SET cart_total_price = \$1 WHERE id = \$2`).
		WithArgs(0, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Clear(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	require.NoError(t, repo.ResetTotal(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
