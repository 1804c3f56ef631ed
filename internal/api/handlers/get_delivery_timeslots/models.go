package get_delivery_timeslots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots/models"
	getDeliveryTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_delivery_timeslots"
)

// DeliveryTimeslotsResponse HTTP response model
type DeliveryTimeslotsResponse struct {
	PickupBookingID      int64                        `json:"pickup_booking_id"`
	EarliestDeliveryTime time.Time                    `json:"earliest_delivery_time"`
	Timeslots            []models.TimeslotDayResponse `json:"timeslots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDeliveryTimeslots.Response) *DeliveryTimeslotsResponse {
	return &DeliveryTimeslotsResponse{
		PickupBookingID:      resp.PickupBookingID,
		EarliestDeliveryTime: resp.EarliestDeliveryTime,
		Timeslots:            models.FromDomainDays(resp.Days),
	}
}
