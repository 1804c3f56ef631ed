package create_order_from_cart

import (
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PickupBookingID <= 0 || req.DeliveryBookingID <= 0 {
		return fmt.Errorf("%w: pickup and delivery bookings are required", ErrInvalidInput)
	}

	if req.PickupBookingID == req.DeliveryBookingID {
		return fmt.Errorf("%w: pickup and delivery bookings must differ", ErrInvalidInput)
	}

	return nil
}

// validateBookingPair проверяет, что доставка в той же прачечной и не раньше окончания стирки
func validateBookingPair(pickup, delivery *domain.BookingDetails, shop *domain.Shop) error {
	if pickup.ShopID != delivery.ShopID {
		return fmt.Errorf("%w: bookings are at different shops", ErrBookingsMismatch)
	}

	earliest := domain.EarliestDeliveryStart(pickup.StartDatetime, shop.WashDuration())
	if delivery.StartDatetime.Before(earliest) {
		return fmt.Errorf("%w: delivery starts before wash is complete", ErrBookingsMismatch)
	}

	return nil
}

// snapshotDetails фиксирует текущие цены позиций корзины
func snapshotDetails(lines []domain.CartLine) []domain.OrderDetail {
	details := make([]domain.OrderDetail, len(lines))
	for i, line := range lines {
		details[i] = line.ToOrderDetail()
	}
	return details
}
