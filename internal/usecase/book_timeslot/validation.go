package book_timeslot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TimeslotID <= 0 {
		return fmt.Errorf("%w: timeslotID must be positive", ErrInvalidInput)
	}

	if req.AddressID <= 0 {
		return fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}

	if !req.BookingType.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	// Доставка всегда привязана к забору
	if req.BookingType == domain.BookingTypeDelivery && (req.PickupBookingID == nil || *req.PickupBookingID <= 0) {
		return fmt.Errorf("%w: pickupBookingID is required for delivery", ErrInvalidInput)
	}

	return nil
}

// validateDeliveryTimeslot проверяет, что слот доставки подходит к бронированию забора
func validateDeliveryTimeslot(
	pickup *domain.BookingDetails,
	delivery *domain.Timeslot,
	shop *domain.Shop,
	userID int64,
) error {
	if !pickup.IsOwnedBy(userID) || pickup.BookingType != domain.BookingTypePickUp {
		return ErrPickupBookingNotFound
	}

	if pickup.ShopID != delivery.ShopID {
		return fmt.Errorf("%w: pickup is at shop id=%d", ErrInvalidDeliveryTimeslot, pickup.ShopID)
	}

	earliest := domain.EarliestDeliveryStart(pickup.StartDatetime, shop.WashDuration())
	if delivery.StartDatetime.Before(earliest) {
		return fmt.Errorf("%w: delivery must start at or after %s",
			ErrInvalidDeliveryTimeslot, earliest.UTC().Format(time.RFC3339))
	}

	return nil
}
