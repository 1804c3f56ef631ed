package create_order

import (
	"context"

	createOrder "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order_from_cart"
)

type CreateOrderUseCase interface {
	Execute(ctx context.Context, req *createOrder.Request) (*createOrder.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
