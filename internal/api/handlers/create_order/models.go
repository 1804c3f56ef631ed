package create_order

import createOrder "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order_from_cart"

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	PickupBookingID   int64 `json:"pickup_booking_id" validate:"required,gt=0"`
	DeliveryBookingID int64 `json:"delivery_booking_id" validate:"required,gt=0,nefield=PickupBookingID"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) *createOrder.Request {
	return &createOrder.Request{
		UserID:            userID,
		PickupBookingID:   r.PickupBookingID,
		DeliveryBookingID: r.DeliveryBookingID,
	}
}
