package payment

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

var paymentColumns = []string{
	"id",
	"order_id",
	"user_id",
	"amount",
	"source",
	"status",
	"gateway_reference",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж для заказа
// На заказ допускается один платеж, повтор возвращает ErrPaymentExists.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"order_id",
			"user_id",
			"amount",
			"source",
			"status",
		).
		Values(
			payment.OrderID,
			payment.UserID,
			payment.Amount,
			string(payment.Source),
			string(payment.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrPaymentExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getBy(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByOrderID получает платеж заказа
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	return r.getBy(ctx, "GetByOrderID", squirrel.Eq{"order_id": orderID})
}

// MarkStatus переводит платеж из pending в итоговый статус.
// Возвращает false, если платеж уже не в pending (повторный callback).
func (r *Repository) MarkStatus(ctx context.Context, id int64, status domain.PaymentStatus, gatewayReference *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", string(status)).
		Set("gateway_reference", squirrel.Expr("COALESCE(?, gateway_reference)", gatewayReference)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.PaymentStatusPending)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: MarkStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var payment domain.Payment
	var source, status string
	var reference sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.UserID,
		&payment.Amount,
		&source,
		&status,
		&reference,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	payment.Source = domain.PaymentSource(source)
	payment.Status = domain.PaymentStatus(status)
	if reference.Valid {
		payment.GatewayReference = &reference.String
	}
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}
