package create_booking

import (
	"context"

	bookTimeslot "github.com/m04kA/SMC-LaundryService/internal/usecase/book_timeslot"
)

type BookTimeslotUseCase interface {
	Execute(ctx context.Context, req *bookTimeslot.Request) (*bookTimeslot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
