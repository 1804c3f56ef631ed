package timeslot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/pgerr"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

const (
	// insertChunkSize ограничивает количество строк в одном INSERT
	insertChunkSize = 500

	columnPickupQuota   = "pickup_available_quota"
	columnDeliveryQuota = "delivery_available_quota"

	notBookedCondition = "NOT EXISTS (SELECT 1 FROM bookings b WHERE b.timeslot_id = timeslots.id)"
	bookedCondition    = "EXISTS (SELECT 1 FROM bookings b WHERE b.timeslot_id = timeslots.id)"

	maxQuotaExpr    = "(SELECT s.max_user_limit_per_time_slot FROM shops s WHERE s.id = timeslots.shop_id)"
	bookedCountExpr = "(SELECT COUNT(*) FROM bookings b WHERE b.timeslot_id = timeslots.id AND b.booking_type = ?)"
)

var timeslotColumns = []string{
	"id",
	"shop_id",
	"start_datetime",
	"end_datetime",
	columnPickupQuota,
	columnDeliveryQuota,
}

// Repository репозиторий слотов и их квот (Quota Ledger).
// Квоты меняются только атомарными условными UPDATE этого репозитория.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkInsert вставляет окна как слоты с начальной квотой.
// Уже существующие слоты (shop_id, start_datetime) пропускаются, их квоты не меняются.
// Возвращает количество реально вставленных строк.
func (r *Repository) BulkInsert(ctx context.Context, shopID int64, windows []domain.TimeWindow, quota int) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var inserted int64
	for start := 0; start < len(windows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(windows) {
			end = len(windows)
		}

		insertBuilder := psqlbuilder.Insert("timeslots").
			Columns("shop_id", "start_datetime", "end_datetime", columnPickupQuota, columnDeliveryQuota)
		for _, w := range windows[start:end] {
			insertBuilder = insertBuilder.Values(shopID, w.Start.UTC(), w.End.UTC(), quota, quota)
		}

		query, args, err := insertBuilder.
			Suffix("ON CONFLICT (shop_id, start_datetime) DO NOTHING").
			ToSql()
		if err != nil {
			return inserted, fmt.Errorf("%w: BulkInsert - build insert query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("%w: BulkInsert - execute insert: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("%w: BulkInsert - get rows affected: %v", ErrExecQuery, err)
		}
		inserted += rowsAffected
	}

	return inserted, nil
}

// SetLockTimeout ограничивает ожидание блокировок до конца текущей транзакции.
// Вне транзакции ничего не делает.
func (r *Repository) SetLockTimeout(ctx context.Context, timeout time.Duration) error {
	if !dbmetrics.IsInTransaction(ctx) || timeout <= 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// SET не принимает параметры, значение целое число миллисекунд
	query := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())
	if _, err := executor.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: SetLockTimeout - execute set: %v", ErrExecQuery, err)
	}

	return nil
}

// TryReserve атомарно уменьшает квоту нужного типа на единицу, если она положительна.
// Возвращает оставшуюся квоту.
// ErrQuotaExhausted - квота уже 0, ErrLockTimeout - строка занята дольше lock_timeout.
func (r *Repository) TryReserve(ctx context.Context, timeslotID int64, bookingType domain.BookingType) (int, error) {
	column, err := quotaColumn(bookingType)
	if err != nil {
		return 0, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timeslots").
		Set(column, squirrel.Expr(column+" - 1")).
		Where(squirrel.Eq{"id": timeslotID}).
		Where(squirrel.Gt{column: 0}).
		Suffix("RETURNING " + column).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: TryReserve - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	switch {
	case err == sql.ErrNoRows:
		exists, existsErr := r.exists(ctx, timeslotID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, ErrTimeslotNotFound
		}
		return 0, ErrQuotaExhausted
	case pgerr.IsLockContention(err):
		return 0, fmt.Errorf("%w: TryReserve - timeslot id=%d: %v", ErrLockTimeout, timeslotID, err)
	case err != nil:
		return 0, fmt.Errorf("%w: TryReserve - execute update: %v", ErrExecQuery, err)
	}

	return remaining, nil
}

// Release возвращает единицу квоты после удаления бронирования.
// Квота не превышает max минус оставшиеся бронирования этого типа, как при пересчете.
// Закрытый при пересчете слот (вне новой сетки) не открывается.
// Вызывать после удаления бронирования в той же транзакции.
func (r *Repository) Release(ctx context.Context, timeslotID int64, bookingType domain.BookingType) error {
	column, err := quotaColumn(bookingType)
	if err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("timeslots").
		Set(column, squirrel.Expr(
			"LEAST("+column+" + 1, GREATEST("+maxQuotaExpr+" - "+bookedCountExpr+", 0))",
			string(bookingType),
		)).
		Where(squirrel.Eq{"id": timeslotID, "closed": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsLockContention(err) {
		return fmt.Errorf("%w: Release - timeslot id=%d: %v", ErrLockTimeout, timeslotID, err)
	}
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, timeslotID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrTimeslotNotFound
		}
	}

	return nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(timeslotColumns...).
		From("timeslots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanTimeslot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTimeslotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan timeslot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// List возвращает слоты по фильтру, упорядоченные по (start_datetime, shop_id, id)
func (r *Repository) List(ctx context.Context, filter domain.TimeslotFilter) ([]*domain.Timeslot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(timeslotColumns...).
		From("timeslots")

	if filter.ShopID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"shop_id": *filter.ShopID})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_datetime": filter.StartFrom.UTC()})
	}
	if filter.StartBefore != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_datetime": filter.StartBefore.UTC()})
	}
	if filter.AvailableFor != nil {
		column, err := quotaColumn(*filter.AvailableFor)
		if err != nil {
			return nil, err
		}
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{column: 1})
	}

	query, args, err := selectBuilder.
		OrderBy("start_datetime ASC", "shop_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Timeslot, 0)
	for rows.Next() {
		slot, err := scanTimeslot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// DeleteUnbookedByShop удаляет все слоты прачечной, на которые нет бронирований
func (r *Repository) DeleteUnbookedByShop(ctx context.Context, shopID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("timeslots").
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(notBookedCondition).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnbookedByShop - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCount(ctx, executor, "DeleteUnbookedByShop", query, args)
}

// DeleteExpiredUnbooked удаляет завершившиеся до before слоты без бронирований
func (r *Repository) DeleteExpiredUnbooked(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("timeslots").
		Where(squirrel.Lt{"end_datetime": before.UTC()}).
		Where(notBookedCondition).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredUnbooked - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCount(ctx, executor, "DeleteExpiredUnbooked", query, args)
}

// ReconcileBooked пересчитывает квоты слотов с бронированиями после смены расписания.
// Слот, совпадающий с новой сеткой (начало в gridStarts и длительность slotMinutes),
// получает max минус уже занятые места; остальные закрываются (квоты 0, closed),
// и Release их больше не открывает.
func (r *Repository) ReconcileBooked(ctx context.Context, shopID int64, gridStarts []time.Time, slotMinutes, maxQuota int) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	epochs := make([]int64, 0, len(gridStarts))
	for _, start := range gridStarts {
		epochs = append(epochs, start.Unix())
	}

	onGrid := "EXTRACT(EPOCH FROM start_datetime)::bigint = ANY(?) AND end_datetime - start_datetime = make_interval(mins => ?)"
	quotaExpr := func(bookingType domain.BookingType) squirrel.Sqlizer {
		return squirrel.Expr(
			"CASE WHEN "+onGrid+" THEN GREATEST(? - "+bookedCountExpr+", 0) ELSE 0 END",
			pq.Array(epochs), slotMinutes, maxQuota, string(bookingType),
		)
	}

	query, args, err := psqlbuilder.Update("timeslots").
		Set(columnPickupQuota, quotaExpr(domain.BookingTypePickUp)).
		Set(columnDeliveryQuota, quotaExpr(domain.BookingTypeDelivery)).
		Set("closed", squirrel.Expr("NOT ("+onGrid+")", pq.Array(epochs), slotMinutes)).
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(bookedCondition).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReconcileBooked - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCount(ctx, executor, "ReconcileBooked", query, args)
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("timeslots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

func (r *Repository) execCount(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func quotaColumn(bookingType domain.BookingType) (string, error) {
	switch bookingType {
	case domain.BookingTypePickUp:
		return columnPickupQuota, nil
	case domain.BookingTypeDelivery:
		return columnDeliveryQuota, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingType, bookingType)
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTimeslot(row scanner) (*domain.Timeslot, error) {
	var slot domain.Timeslot

	err := row.Scan(
		&slot.ID,
		&slot.ShopID,
		&slot.StartDatetime,
		&slot.EndDatetime,
		&slot.PickupAvailableQuota,
		&slot.DeliveryAvailableQuota,
	)
	if err != nil {
		return nil, err
	}

	return &slot, nil
}
