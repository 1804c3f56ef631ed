package refresh_timeslots

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots"
)

type TimeslotService interface {
	RefreshAll(ctx context.Context) (*timeslots.RefreshResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
