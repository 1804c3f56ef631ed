package orders

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("orders: order not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("orders: access denied")

	// ErrInvalidStatus возвращается при попытке установить статус, недоступный владельцу прачечной
	ErrInvalidStatus = errors.New("orders: invalid order status")

	// ErrOrderNotPaid возвращается при попытке обработать неоплаченный заказ
	ErrOrderNotPaid = errors.New("orders: order is not paid yet")

	// ErrInvalidStatusTransition возвращается при попытке вернуть заказ в предыдущий статус
	ErrInvalidStatusTransition = errors.New("orders: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
