package get_delivery_timeslots

import (
	"context"

	getDeliveryTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_delivery_timeslots"
)

type GetDeliveryTimeslotsUseCase interface {
	Execute(ctx context.Context, req *getDeliveryTimeslots.Request) (*getDeliveryTimeslots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
