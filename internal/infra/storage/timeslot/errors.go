package timeslot

import "errors"

var (
	// ErrTimeslotNotFound возвращается, когда слот не найден
	ErrTimeslotNotFound = errors.New("timeslot.repository: timeslot not found")

	// ErrQuotaExhausted возвращается, когда квота нужного типа исчерпана
	ErrQuotaExhausted = errors.New("timeslot.repository: quota exhausted")

	// ErrLockTimeout возвращается, если строка слота не была заблокирована за отведенное время
	ErrLockTimeout = errors.New("timeslot.repository: lock wait timeout")

	// ErrInvalidBookingType возвращается при неизвестном типе квоты
	ErrInvalidBookingType = errors.New("timeslot.repository: invalid booking type")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
