package shops

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots"
)

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error)
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id int64) error
}

// TimeslotRepository интерфейс репозитория слотов
type TimeslotRepository interface {
	DeleteUnbookedByShop(ctx context.Context, shopID int64) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistsForShop(ctx context.Context, shopID int64) (bool, error)
}

// TimeslotGenerator интерфейс генератора слотов
type TimeslotGenerator interface {
	Generate(ctx context.Context, shop *domain.Shop) (int64, error)
	Regenerate(ctx context.Context, shop *domain.Shop) (*timeslots.RegenerateResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
