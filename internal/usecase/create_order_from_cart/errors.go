package create_order_from_cart

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order_from_cart: invalid input data")

	// ErrCartEmpty возвращается, когда в корзине пользователя нет позиций
	ErrCartEmpty = errors.New("create_order_from_cart: cart is empty")

	// ErrBookingNotFound возвращается, когда бронирование не найдено у пользователя или имеет другой тип
	ErrBookingNotFound = errors.New("create_order_from_cart: booking not found")

	// ErrBookingsMismatch возвращается, когда доставка не подходит к забору
	ErrBookingsMismatch = errors.New("create_order_from_cart: delivery booking does not match pickup booking")

	// ErrBookingAlreadyOrdered возвращается, когда бронирование уже использовано в другом заказе
	ErrBookingAlreadyOrdered = errors.New("create_order_from_cart: booking already attached to an order")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order_from_cart: internal error")
)
