package book_timeslot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_timeslot: invalid input data")

	// ErrAddressNotFound возвращается, когда адрес не найден или принадлежит другому пользователю
	ErrAddressNotFound = errors.New("book_timeslot: address not found")

	// ErrTimeslotNotFound возвращается, когда слот не найден
	ErrTimeslotNotFound = errors.New("book_timeslot: timeslot not found")

	// ErrTimeslotInPast возвращается при попытке забронировать уже начавшийся слот
	ErrTimeslotInPast = errors.New("book_timeslot: timeslot has already started")

	// ErrShopInactive возвращается, когда прачечная слота не принимает бронирования
	ErrShopInactive = errors.New("book_timeslot: shop is not active")

	// ErrPickupBookingNotFound возвращается, когда бронирование забора не найдено у пользователя
	ErrPickupBookingNotFound = errors.New("book_timeslot: pickup booking not found")

	// ErrInvalidDeliveryTimeslot возвращается, когда слот доставки не подходит к бронированию забора
	ErrInvalidDeliveryTimeslot = errors.New("book_timeslot: delivery timeslot does not match pickup booking")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть бронирование на этот слот
	ErrDuplicateBooking = errors.New("book_timeslot: timeslot already booked by user")

	// ErrQuotaExhausted возвращается, когда квота нужного типа исчерпана
	ErrQuotaExhausted = errors.New("book_timeslot: quota exhausted")

	// ErrQuotaContested возвращается, если не удалось дождаться блокировки слота; запрос можно повторить
	ErrQuotaContested = errors.New("book_timeslot: timeslot is contested, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_timeslot: internal error")
)
