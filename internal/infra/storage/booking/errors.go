package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateBooking возвращается при повторном бронировании того же слота пользователем
	ErrDuplicateBooking = errors.New("booking.repository: user already booked this timeslot")

	// ErrBookingInUse возвращается при удалении бронирования, на которое ссылается заказ
	ErrBookingInUse = errors.New("booking.repository: booking is referenced by an order")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
