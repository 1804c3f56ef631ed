package get_shop

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

type ShopService interface {
	GetByID(ctx context.Context, shopID int64) (*models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
