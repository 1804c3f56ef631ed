package address

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LaundryService/pkg/psqlbuilder"
)

// Repository репозиторий адресов пользователей (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория адресов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает адрес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Address, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id").
		From("addresses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var address domain.Address
	err = executor.QueryRowContext(ctx, query, args...).Scan(&address.ID, &address.UserID)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan address: %v", ErrScanRow, err)
	}

	return &address, nil
}
