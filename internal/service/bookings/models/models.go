package models

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      int64   `json:"-"`
	BookingType *string `json:"booking_type,omitempty"` // опциональный фильтр: pick_up | delivery
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	TimeslotID    int64     `json:"time_slot_id"`
	UserID        int64     `json:"user_id"`
	AddressID     int64     `json:"address_id"`
	BookingType   string    `json:"booking_type"`
	ShopID        int64     `json:"shop_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.BookingDetails) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		TimeslotID:    b.TimeslotID,
		UserID:        b.UserID,
		AddressID:     b.AddressID,
		BookingType:   string(b.BookingType),
		ShopID:        b.ShopID,
		StartDatetime: b.StartDatetime,
		EndDatetime:   b.EndDatetime,
		CreatedAt:     b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingType конвертирует строку в domain.BookingType с валидацией
func ToDomainBookingType(value string) (domain.BookingType, bool) {
	bt := domain.BookingType(value)
	return bt, bt.IsValid()
}
