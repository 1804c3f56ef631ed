package update_shop

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

type ShopService interface {
	Update(ctx context.Context, shopID int64, req *models.UpdateShopRequest) (*models.ShopResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
