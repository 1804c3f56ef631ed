package order

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

var orderColumns = []string{
	"id",
	"user_id",
	"pickup_booking_id",
	"delivery_booking_id",
	"total_price",
	"order_status",
	"created_at",
	"updated_at",
}

var detailColumns = []string{
	"id",
	"order_id",
	"item_id",
	"wash_category_id",
	"quantity",
	"product_price",
	"wash_category_price",
	"subtotal_price",
}

// Repository репозиторий для работы с заказами и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе с позициями
// Должен вызываться в транзакции: заказ без позиций не сохраняется.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"user_id",
			"pickup_booking_id",
			"delivery_booking_id",
			"total_price",
			"order_status",
		).
		Values(
			order.UserID,
			order.PickupBookingID,
			order.DeliveryBookingID,
			order.TotalPrice,
			string(order.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&order.ID, &createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrBookingAlreadyOrdered
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	if len(order.Details) == 0 {
		return order, nil
	}

	// Вставляем позиции одним запросом
	insertBuilder := psqlbuilder.Insert("order_details").
		Columns(
			"order_id",
			"item_id",
			"wash_category_id",
			"quantity",
			"product_price",
			"wash_category_price",
			"subtotal_price",
		)
	for _, d := range order.Details {
		insertBuilder = insertBuilder.Values(
			order.ID,
			d.ItemID,
			d.WashCategoryID,
			d.Quantity,
			d.ProductPrice,
			d.WashCategoryPrice,
			d.SubtotalPrice,
		)
	}

	query, args, err = insertBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build details insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute details insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдает строки в порядке VALUES
	for i := 0; rows.Next(); i++ {
		if i >= len(order.Details) {
			return nil, fmt.Errorf("%w: Create - unexpected details row", ErrScanRow)
		}
		if err := rows.Scan(&order.Details[i].ID); err != nil {
			return nil, fmt.Errorf("%w: Create - scan detail id: %v", ErrScanRow, err)
		}
		order.Details[i].OrderID = order.ID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create - rows error: %v", ErrScanRow, err)
	}

	return order, nil
}

// GetByID получает заказ вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	details, err := r.listDetails(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Details = details

	return order, nil
}

// ListByUser получает заказы пользователя без позиций, новые первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan row: %v", ErrScanRow, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}

// UpdateStatus переводит заказ в статус to, только если текущий статус входит в from.
// Возвращает false, если заказ уже не находится ни в одном из статусов from.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromValues := make([]string, 0, len(from))
	for _, s := range from {
		fromValues = append(fromValues, string(s))
	}

	query, args, err := psqlbuilder.Update("orders").
		Set("order_status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"order_status": fromValues}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ExistsForBooking проверяет, привязано ли бронирование к заказу
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("orders").
		Where(squirrel.Or{
			squirrel.Eq{"pickup_booking_id": bookingID},
			squirrel.Eq{"delivery_booking_id": bookingID},
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetShopOwnerID возвращает владельца прачечной, обслуживающей заказ (по слоту забора)
func (r *Repository) GetShopOwnerID(ctx context.Context, orderID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.user_id").
		From("orders o").
		Join("bookings b ON b.id = o.pickup_booking_id").
		Join("timeslots t ON t.id = b.timeslot_id").
		Join("shops s ON s.id = t.shop_id").
		Where(squirrel.Eq{"o.id": orderID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetShopOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	var ownerID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, ErrOrderNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetShopOwnerID - execute query: %v", ErrExecQuery, err)
	}

	return ownerID, nil
}

func (r *Repository) listDetails(ctx context.Context, orderID int64) ([]domain.OrderDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(detailColumns...).
		From("order_details").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]domain.OrderDetail, 0)
	for rows.Next() {
		var d domain.OrderDetail
		err := rows.Scan(
			&d.ID,
			&d.OrderID,
			&d.ItemID,
			&d.WashCategoryID,
			&d.Quantity,
			&d.ProductPrice,
			&d.WashCategoryPrice,
			&d.SubtotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listDetails - scan row: %v", ErrScanRow, err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listDetails - rows error: %v", ErrScanRow, err)
	}

	return details, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner) (*domain.Order, error) {
	var order domain.Order
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.PickupBookingID,
		&order.DeliveryBookingID,
		&order.TotalPrice,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}
