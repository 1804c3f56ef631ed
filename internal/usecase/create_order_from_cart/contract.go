package create_order_from_cart

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// CartRepository интерфейс репозитория корзины
type CartRepository interface {
	ListForUpdate(ctx context.Context, userID int64) ([]domain.CartLine, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	ResetTotal(ctx context.Context, userID int64) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
}

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
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
