package book_timeslot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// TimeslotRepository интерфейс журнала квот
type TimeslotRepository interface {
	SetLockTimeout(ctx context.Context, timeout time.Duration) error
	GetByID(ctx context.Context, id int64) (*domain.Timeslot, error)
	TryReserve(ctx context.Context, timeslotID int64, bookingType domain.BookingType) (int, error)
}

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	// GetForShare блокирует прачечную от изменения расписания до конца транзакции
	GetForShare(ctx context.Context, id int64) (*domain.Shop, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ExistsForUserAndTimeslot(ctx context.Context, userID, timeslotID int64) (bool, error)
}

// AddressRepository интерфейс репозитория адресов
type AddressRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Address, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета исходов бронирования
type MetricsRecorder interface {
	RecordBooking(bookingType, outcome string)
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
