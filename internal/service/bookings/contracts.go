package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ListByUser(ctx context.Context, userID int64, bookingType *domain.BookingType) ([]*domain.BookingDetails, error)
	Delete(ctx context.Context, id int64) error
}

// TimeslotRepository интерфейс журнала квот
type TimeslotRepository interface {
	Release(ctx context.Context, timeslotID int64, bookingType domain.BookingType) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
}

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Shop, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
