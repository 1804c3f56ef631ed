package timeslots

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("timeslots: shop not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("timeslots: internal error")
)
