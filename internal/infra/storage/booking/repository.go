package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/pgerr"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

var detailsColumns = []string{
	"b.id",
	"b.timeslot_id",
	"b.user_id",
	"b.address_id",
	"b.booking_type",
	"b.created_at",
	"t.shop_id",
	"t.start_datetime",
	"t.end_datetime",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Должен вызываться в той же транзакции, что и списание квоты слота.
// Нарушение уникальности (timeslot_id, user_id) возвращается как ErrDuplicateBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"timeslot_id",
			"user_id",
			"address_id",
			"booking_type",
		).
		Values(
			booking.TimeslotID,
			booking.UserID,
			booking.AddressID,
			string(booking.BookingType),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateBooking
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time

	return booking, nil
}

// GetByID получает бронирование вместе с окном и прачечной его слота
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("timeslots t ON t.id = b.timeslot_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return details, nil
}

// ExistsForUserAndTimeslot проверяет, есть ли у пользователя бронирование на слот (любого типа)
func (r *Repository) ExistsForUserAndTimeslot(ctx context.Context, userID, timeslotID int64) (bool, error) {
	return r.exists(ctx, "ExistsForUserAndTimeslot", psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "timeslot_id": timeslotID}).
		Limit(1))
}

// ExistsForShop проверяет, есть ли бронирования на слоты прачечной
func (r *Repository) ExistsForShop(ctx context.Context, shopID int64) (bool, error) {
	return r.exists(ctx, "ExistsForShop", psqlbuilder.Select("1").
		From("bookings b").
		Join("timeslots t ON t.id = b.timeslot_id").
		Where(squirrel.Eq{"t.shop_id": shopID}).
		Limit(1))
}

// ListByUser получает бронирования пользователя, новые слоты первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64, bookingType *domain.BookingType) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		Join("timeslots t ON t.id = b.timeslot_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("t.start_datetime DESC", "b.id DESC")

	// Фильтрация по типу, если указан
	if bookingType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booking_type": string(*bookingType)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Delete удаляет бронирование
// Квоту слота возвращает вызывающий код в той же транзакции
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrBookingInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}

	return true, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row scanner) (*domain.BookingDetails, error) {
	var details domain.BookingDetails
	var bookingType string
	var createdAt sql.NullTime

	err := row.Scan(
		&details.ID,
		&details.TimeslotID,
		&details.UserID,
		&details.AddressID,
		&bookingType,
		&createdAt,
		&details.ShopID,
		&details.StartDatetime,
		&details.EndDatetime,
	)
	if err != nil {
		return nil, err
	}

	details.BookingType = domain.BookingType(bookingType)
	details.CreatedAt = createdAt.Time

	return &details, nil
}
