package shops

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("shops: shop not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец прачечной
	ErrAccessDenied = errors.New("shops: access denied")

	// ErrInvalidScheduleConfiguration возвращается при нарушении ограничений расписания
	ErrInvalidScheduleConfiguration = errors.New("shops: invalid schedule configuration")

	// ErrShopHasBookings возвращается при удалении прачечной, на слоты которой есть бронирования
	ErrShopHasBookings = errors.New("shops: shop has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("shops: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("shops: internal error")
)
