package get_delivery_timeslots

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

	if req.PickupBookingID <= 0 {
		return fmt.Errorf("%w: pickupBookingID must be positive", ErrInvalidInput)
	}

	return nil
}

// filterDeliveryCandidates оставляет слоты прачечной забора, начинающиеся не раньше earliest
func filterDeliveryCandidates(slots []*domain.Timeslot, shopID int64, earliest time.Time) []*domain.Timeslot {
	result := make([]*domain.Timeslot, 0, len(slots))
	for _, slot := range slots {
		if slot.ShopID != shopID || slot.StartDatetime.Before(earliest) {
			continue
		}
		result = append(result, slot)
	}
	return result
}
