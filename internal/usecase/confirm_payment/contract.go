package confirm_payment

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkStatus(ctx context.Context, id int64, status domain.PaymentStatus, gatewayReference *string) (bool, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	UpdateStatus(ctx context.Context, id int64, from []domain.OrderStatus, to domain.OrderStatus) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// MetricsRecorder интерфейс для записи метрик платежей
type MetricsRecorder interface {
	RecordPayment(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
