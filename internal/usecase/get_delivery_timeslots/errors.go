package get_delivery_timeslots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_delivery_timeslots: invalid input data")

	// ErrPickupBookingNotFound возвращается, когда бронирование забора не найдено у пользователя
	ErrPickupBookingNotFound = errors.New("get_delivery_timeslots: pickup booking not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_delivery_timeslots: internal error")
)
