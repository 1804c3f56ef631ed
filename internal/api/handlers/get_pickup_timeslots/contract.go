package get_pickup_timeslots

import (
	"context"

	getPickupTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_pickup_timeslots"
)

type GetPickupTimeslotsUseCase interface {
	Execute(ctx context.Context, req *getPickupTimeslots.Request) (*getPickupTimeslots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
