package jobs

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots"
)

// TimeslotMaintainer интерфейс обслуживания горизонта слотов
type TimeslotMaintainer interface {
	RefreshAll(ctx context.Context) (*timeslots.RefreshResult, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
