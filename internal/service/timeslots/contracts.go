package timeslots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// ShopRepository интерфейс репозитория прачечных
type ShopRepository interface {
	GetForShare(ctx context.Context, id int64) (*domain.Shop, error)
	ListActive(ctx context.Context) ([]*domain.Shop, error)
}

// TimeslotRepository интерфейс репозитория слотов
type TimeslotRepository interface {
	BulkInsert(ctx context.Context, shopID int64, windows []domain.TimeWindow, quota int) (int64, error)
	DeleteUnbookedByShop(ctx context.Context, shopID int64) (int64, error)
	DeleteExpiredUnbooked(ctx context.Context, before time.Time) (int64, error)
	ReconcileBooked(ctx context.Context, shopID int64, gridStarts []time.Time, slotMinutes, maxQuota int) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс для учета сгенерированных слотов
type MetricsRecorder interface {
	RecordTimeslotsGenerated(count int)
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
