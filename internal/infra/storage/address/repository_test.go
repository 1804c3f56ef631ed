package address

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, user_id FROM addresses WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(3, 7))
	mock.ExpectQuery(`SELECT id, user_id FROM addresses WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	address, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), address.UserID)

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
