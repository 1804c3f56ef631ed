package cart

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий корзины пользователя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корзины
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListForUpdate получает позиции корзины с текущими ценами товара и категории стирки.
// Внутри транзакции строки корзины блокируются до ее завершения.
func (r *Repository) ListForUpdate(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"c.id",
		"c.user_id",
		"c.item_id",
		"c.wash_category_id",
		"c.quantity",
		"i.price",
		"w.extra_per_item",
	).
		From("cart_items c").
		Join("items i ON i.id = c.item_id").
		Join("wash_categories w ON w.id = c.wash_category_id").
		Where(squirrel.Eq{"c.user_id": userID}).
		OrderBy("c.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF c")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		var extra decimal.NullDecimal

		err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ItemID,
			&line.WashCategoryID,
			&line.Quantity,
			&line.ItemPrice,
			&extra,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListForUpdate - scan row: %v", ErrScanRow, err)
		}

		// Категория без наценки
		line.WashCategoryExtra = decimal.Zero
		if extra.Valid {
			line.WashCategoryExtra = extra.Decimal
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForUpdate - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// Clear удаляет все позиции корзины пользователя
func (r *Repository) Clear(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Clear - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Clear - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ResetTotal обнуляет сохраненную сумму корзины пользователя
func (r *Repository) ResetTotal(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("cart_total_price", 0).
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResetTotal - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ResetTotal - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
