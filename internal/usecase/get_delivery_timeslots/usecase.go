package get_delivery_timeslots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
)

// UseCase use case получения слотов для доставки
type UseCase struct {
	timeslotRepo TimeslotRepository
	bookingRepo  BookingRepository
	shopRepo     ShopRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	timeslotRepo TimeslotRepository,
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		timeslotRepo: timeslotRepo,
		bookingRepo:  bookingRepo,
		shopRepo:     shopRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты доставки для бронирования забора.
// Слоты, начинающиеся раньше окончания стирки, не попадают в ответ.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDeliveryTimeslots: user=%d, pickupBooking=%d, isAvailable=%t",
		req.UserID, req.PickupBookingID, req.IsAvailable)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDeliveryTimeslots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование забора
	pickup, err := uc.bookingRepo.GetByID(ctx, req.PickupBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("GetDeliveryTimeslots: pickup booking id=%d not found", req.PickupBookingID)
			return nil, ErrPickupBookingNotFound
		}
		uc.logger.Error("GetDeliveryTimeslots: failed to get booking id=%d: %v", req.PickupBookingID, err)
		return nil, fmt.Errorf("%w: failed to get pickup booking: %v", ErrInternal, err)
	}
	if !pickup.IsOwnedBy(req.UserID) || pickup.BookingType != domain.BookingTypePickUp {
		uc.logger.Warn("GetDeliveryTimeslots: booking id=%d is not a pickup of user=%d", req.PickupBookingID, req.UserID)
		return nil, ErrPickupBookingNotFound
	}

	// 3. Получаем прачечную для срока стирки
	shop, err := uc.shopRepo.GetByID(ctx, pickup.ShopID)
	if err != nil {
		uc.logger.Error("GetDeliveryTimeslots: failed to get shop id=%d: %v", pickup.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	earliest := domain.EarliestDeliveryStart(pickup.StartDatetime, shop.WashDuration())
	from := earliest
	if now := uc.timeProvider.Now(); now.After(from) {
		from = now
	}

	// 4. Получаем слоты той же прачечной начиная с earliest
	filter := domain.TimeslotFilter{
		ShopID:    &pickup.ShopID,
		StartFrom: &from,
	}
	if req.IsAvailable {
		delivery := domain.BookingTypeDelivery
		filter.AvailableFor = &delivery
	}

	slots, err := uc.timeslotRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDeliveryTimeslots: failed to list timeslots: %v", err)
		return nil, fmt.Errorf("%w: failed to list timeslots: %v", ErrInternal, err)
	}

	// 5. Повторно фильтруем и группируем по дням
	slots = filterDeliveryCandidates(slots, pickup.ShopID, earliest)
	days := domain.GroupTimeslotsByDate(slots, uc.location)

	uc.logger.Info("GetDeliveryTimeslots: found %d timeslots for pickup booking id=%d", len(slots), pickup.ID)
	return &Response{
		PickupBookingID:      pickup.ID,
		EarliestDeliveryTime: earliest,
		Days:                 days,
	}, nil
}
