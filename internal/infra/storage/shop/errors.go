package shop

import "errors"

var (
	// ErrShopNotFound возвращается, когда прачечная не найдена
	ErrShopNotFound = errors.New("shop.repository: shop not found")

	// ErrLockTimeout возвращается, если строка прачечной не была заблокирована за отведенное время
	ErrLockTimeout = errors.New("shop.repository: lock wait timeout")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("shop.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("shop.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("shop.repository: failed to scan row")
)
