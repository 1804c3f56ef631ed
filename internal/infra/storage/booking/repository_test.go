package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/ptr"
)

var detailsRowColumns = []string{"id", "timeslot_id", "user_id", "address_id", "booking_type", "created_at", "shop_id", "start_datetime", "end_datetime"}

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	createdAt := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO bookings \(timeslot_id,user_id,address_id,booking_type\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, created_at`).
		WithArgs(int64(11), int64(7), int64(3), "pick_up").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(100, createdAt))

	created, err := repo.Create(context.Background(), &domain.Booking{
		TimeslotID:  11,
		UserID:      7,
		AddressID:   3,
		BookingType: domain.BookingTypePickUp,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_timeslot_id_user_id_key"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		TimeslotID:  11,
		UserID:      7,
		AddressID:   3,
		BookingType: domain.BookingTypeDelivery,
	})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN timeslots t ON t.id = b.timeslot_id WHERE b.id = \$1`).
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns).
			AddRow(100, 11, 7, 3, "delivery", start, 2, start, start.Add(3*time.Hour)))

	details, err := repo.GetByID(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingTypeDelivery, details.BookingType)
	assert.Equal(t, int64(2), details.ShopID)
	assert.Equal(t, start.Add(3*time.Hour), details.EndDatetime)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ExistsForUserAndTimeslot(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM bookings WHERE timeslot_id = \$1 AND user_id = \$2 LIMIT 1`).
		WithArgs(int64(11), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery(`SELECT 1 FROM bookings`).
		WithArgs(int64(12), int64(7)).
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsForUserAndTimeslot(context.Background(), 7, 11)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForUserAndTimeslot(context.Background(), 7, 12)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newRepo(t)
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN timeslots t ON t.id = b.timeslot_id WHERE b.user_id = \$1 AND b.booking_type = \$2 ORDER BY t.start_datetime DESC, b.id DESC`).
		WithArgs(int64(7), "pick_up").
		WillReturnRows(sqlmock.NewRows(detailsRowColumns).
			AddRow(101, 12, 7, 3, "pick_up", start, 2, start.Add(24*time.Hour), start.Add(27*time.Hour)).
			AddRow(100, 11, 7, 3, "pick_up", start, 2, start, start.Add(3*time.Hour)))

	bookings, err := repo.ListByUser(context.Background(), 7, ptr.Ptr(domain.BookingTypePickUp))

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(101), bookings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 100))
	assert.ErrorIs(t, repo.Delete(context.Background(), 101), ErrBookingNotFound)
}

func TestRepository_Delete_ReferencedByOrder(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(int64(100)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "orders_pickup_booking_id_fkey"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 100), ErrBookingInUse)
}
