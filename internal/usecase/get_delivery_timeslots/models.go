package get_delivery_timeslots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модель запроса на получение слотов доставки
type Request struct {
	UserID          int64 // ID аутентифицированного пользователя
	PickupBookingID int64 // Бронирование забора, к которому подбирается доставка
	IsAvailable     bool  // Только слоты со свободной квотой доставки
}

// Response модель ответа со слотами, сгруппированными по дням
type Response struct {
	PickupBookingID      int64
	EarliestDeliveryTime time.Time // Начало забора + срок стирки прачечной
	Days                 []domain.TimeslotsByDate
}
