package address

import "errors"

var (
	// ErrAddressNotFound возвращается, когда адрес не найден
	ErrAddressNotFound = errors.New("address.repository: address not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("address.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("address.repository: failed to scan row")
)
