package create_order_from_cart

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// Request модель запроса на оформление заказа из корзины
type Request struct {
	UserID            int64 // ID аутентифицированного пользователя
	PickupBookingID   int64 // Бронирование забора
	DeliveryBookingID int64 // Бронирование доставки
}

// Response модель ответа с созданным заказом и его позициями
type Response struct {
	Order *domain.Order
}
