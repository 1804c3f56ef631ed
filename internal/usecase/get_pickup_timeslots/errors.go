package get_pickup_timeslots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_pickup_timeslots: invalid input data")

	// ErrInvalidDateRange возвращается, когда конец периода раньше начала или период слишком длинный
	ErrInvalidDateRange = errors.New("get_pickup_timeslots: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_pickup_timeslots: internal error")
)
