package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrCannotCancel возвращается, когда бронирование уже привязано к заказу
	ErrCannotCancel = errors.New("bookings: booking is attached to an order and cannot be cancelled")

	// ErrBookingStarted возвращается при отмене бронирования, слот которого уже начался
	ErrBookingStarted = errors.New("bookings: timeslot of the booking has already started")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
