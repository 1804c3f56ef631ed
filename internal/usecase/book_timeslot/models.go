package book_timeslot

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID          int64              // ID аутентифицированного пользователя
	TimeslotID      int64              // ID слота
	BookingType     domain.BookingType // pick_up | delivery
	AddressID       int64              // ID адреса пользователя
	PickupBookingID *int64             // Обязателен для delivery: бронирование забора того же пользователя
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	TimeslotID     int64
	UserID         int64
	AddressID      int64
	BookingType    domain.BookingType
	ShopID         int64
	StartDatetime  time.Time
	EndDatetime    time.Time
	RemainingQuota int // Оставшаяся квота этого типа после бронирования
	CreatedAt      time.Time
}
