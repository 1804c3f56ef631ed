package get_pickup_timeslots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// UseCase use case получения слотов для забора
type UseCase struct {
	timeslotRepo TimeslotRepository
	horizonDays  int
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	timeslotRepo TimeslotRepository,
	horizonDays int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		timeslotRepo: timeslotRepo,
		horizonDays:  horizonDays,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает будущие слоты, сгруппированные по календарным дням
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetPickupTimeslots: shop=%v, isAvailable=%t", req.ShopID, req.IsAvailable)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetPickupTimeslots: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем период
	from, before := periodBounds(req, uc.timeProvider.Now(), uc.horizonDays, uc.location)
	if !from.Before(before) {
		return &Response{Days: []domain.TimeslotsByDate{}}, nil
	}

	filter := domain.TimeslotFilter{
		ShopID:      req.ShopID,
		StartFrom:   &from,
		StartBefore: &before,
	}
	if req.IsAvailable {
		pickup := domain.BookingTypePickUp
		filter.AvailableFor = &pickup
	}

	// 3. Получаем слоты
	slots, err := uc.timeslotRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetPickupTimeslots: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	// 4. Группируем по дням
	days := domain.GroupTimeslotsByDate(slots, uc.location)

	uc.logger.Info("GetPickupTimeslots: found %d timeslots over %d days", len(slots), len(days))
	return &Response{Days: days}, nil
}
