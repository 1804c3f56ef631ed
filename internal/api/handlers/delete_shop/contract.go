package delete_shop

import "context"

type ShopService interface {
	Delete(ctx context.Context, shopID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
