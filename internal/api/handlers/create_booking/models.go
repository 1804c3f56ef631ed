package create_booking

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookTimeslot "github.com/m04kA/SMC-LaundryService/internal/usecase/book_timeslot"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	TimeslotID      int64  `json:"time_slot_id" validate:"required,gt=0"`
	BookingType     string `json:"booking_type" validate:"required,oneof=pick_up delivery"`
	AddressID       int64  `json:"address_id" validate:"required,gt=0"`
	PickupBookingID *int64 `json:"pickup_booking_id,omitempty" validate:"required_if=BookingType delivery,omitempty,gt=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64     `json:"id"`
	TimeslotID     int64     `json:"time_slot_id"`
	UserID         int64     `json:"user_id"`
	AddressID      int64     `json:"address_id"`
	BookingType    string    `json:"booking_type"`
	ShopID         int64     `json:"shop_id"`
	StartDatetime  time.Time `json:"start_datetime"`
	EndDatetime    time.Time `json:"end_datetime"`
	RemainingQuota int       `json:"remaining_quota"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *bookTimeslot.Request {
	return &bookTimeslot.Request{
		UserID:          userID,
		TimeslotID:      r.TimeslotID,
		BookingType:     domain.BookingType(r.BookingType),
		AddressID:       r.AddressID,
		PickupBookingID: r.PickupBookingID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookTimeslot.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		TimeslotID:     resp.TimeslotID,
		UserID:         resp.UserID,
		AddressID:      resp.AddressID,
		BookingType:    string(resp.BookingType),
		ShopID:         resp.ShopID,
		StartDatetime:  resp.StartDatetime,
		EndDatetime:    resp.EndDatetime,
		RemainingQuota: resp.RemainingQuota,
		CreatedAt:      resp.CreatedAt,
	}
}
