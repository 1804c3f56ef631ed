package get_pickup_timeslots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Request модель запроса на получение слотов забора
type Request struct {
	ShopID      *int64     // Фильтр по прачечной (опционально)
	IsAvailable bool       // Только слоты со свободной квотой забора
	StartDate   *time.Time // Первый день периода (опционально, по умолчанию сегодня)
	EndDate     *time.Time // Последний день периода включительно (опционально)
}

// Response модель ответа со слотами, сгруппированными по дням
type Response struct {
	Days []domain.TimeslotsByDate
}
