package payments

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден у пользователя
	ErrOrderNotFound = errors.New("payments: order not found")

	// ErrPaymentNotFound возвращается, когда у заказа нет платежа
	ErrPaymentNotFound = errors.New("payments: payment not found")

	// ErrOrderNotPayable возвращается, когда заказ уже не ожидает оплаты
	ErrOrderNotPayable = errors.New("payments: order is not awaiting payment")

	// ErrPaymentExists возвращается, когда платеж по заказу уже создан
	ErrPaymentExists = errors.New("payments: payment for order already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
