package shop

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

var shopColumns = []string{
	"id",
	"user_id",
	"name",
	"opening_time",
	"closing_time",
	"wash_duration_minutes",
	"time_slot_duration_minutes",
	"max_user_limit_per_time_slot",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с прачечными
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория прачечных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую прачечную
func (r *Repository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shops").
		Columns(
			"user_id",
			"name",
			"opening_time",
			"closing_time",
			"wash_duration_minutes",
			"time_slot_duration_minutes",
			"max_user_limit_per_time_slot",
			"active",
		).
		Values(
			shop.UserID,
			shop.Name,
			shop.OpeningTime,
			shop.ClosingTime,
			shop.WashDurationMinutes,
			shop.TimeslotDurationMinutes,
			shop.MaxUserLimitPerTimeslot,
			shop.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&shop.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	shop.CreatedAt = createdAt.Time
	shop.UpdatedAt = updatedAt.Time

	return shop, nil
}

// GetByID получает прачечную по ID без блокировки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Shop, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate получает прачечную и блокирует строку до конца транзакции.
// Сериализует изменения расписания одной прачечной.
func (r *Repository) GetForUpdate(ctx context.Context, id int64) (*domain.Shop, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return r.get(ctx, id, "")
	}
	return r.get(ctx, id, "FOR UPDATE")
}

// GetForShare получает прачечную с разделяемой блокировкой.
// Бронирования не блокируют друг друга, но ждут завершения изменения расписания.
func (r *Repository) GetForShare(ctx context.Context, id int64) (*domain.Shop, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return r.get(ctx, id, "")
	}
	return r.get(ctx, id, "FOR SHARE")
}

func (r *Repository) get(ctx context.Context, id int64, lock string) (*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"id": id})

	if lock != "" {
		selectBuilder = selectBuilder.Suffix(lock)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	shop, err := scanShop(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrShopNotFound
	}
	if lock != "" && pgerr.IsLockContention(err) {
		return nil, fmt.Errorf("%w: shop id=%d: %v", ErrLockTimeout, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan shop: %v", ErrScanRow, err)
	}

	return shop, nil
}

// Update обновляет все изменяемые поля прачечной
func (r *Repository) Update(ctx context.Context, shop *domain.Shop) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shops").
		Set("name", shop.Name).
		Set("opening_time", shop.OpeningTime).
		Set("closing_time", shop.ClosingTime).
		Set("wash_duration_minutes", shop.WashDurationMinutes).
		Set("time_slot_duration_minutes", shop.TimeslotDurationMinutes).
		Set("max_user_limit_per_time_slot", shop.MaxUserLimitPerTimeslot).
		Set("active", shop.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": shop.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShopNotFound
	}

	return nil
}

// Delete удаляет прачечную
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("shops").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrShopNotFound
	}

	return nil
}

// ListActive возвращает все активные прачечные
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Shop, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(shopColumns...).
		From("shops").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shops := make([]*domain.Shop, 0)
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return shops, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanShop(row scanner) (*domain.Shop, error) {
	var shop domain.Shop
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&shop.ID,
		&shop.UserID,
		&shop.Name,
		&shop.OpeningTime,
		&shop.ClosingTime,
		&shop.WashDurationMinutes,
		&shop.TimeslotDurationMinutes,
		&shop.MaxUserLimitPerTimeslot,
		&shop.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	shop.CreatedAt = createdAt.Time
	shop.UpdatedAt = updatedAt.Time

	return &shop, nil
}
