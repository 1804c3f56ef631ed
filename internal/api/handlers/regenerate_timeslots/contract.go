package regenerate_timeslots

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

type ShopService interface {
	RegenerateTimeslots(ctx context.Context, shopID, userID int64) (*models.RegenerateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
