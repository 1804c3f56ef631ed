package book_timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	addressRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/address"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/shop"
	timeslotRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/timeslot"
)

// Исходы бронирования для метрик
const (
	outcomeBooked    = "booked"
	outcomeDuplicate = "duplicate"
	outcomeExhausted = "exhausted"
	outcomeContested = "contested"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
)

// UseCase use case бронирования слота (Booking Engine)
type UseCase struct {
	timeslotRepo TimeslotRepository
	shopRepo     ShopRepository
	bookingRepo  BookingRepository
	addressRepo  AddressRepository
	txManager    TransactionManager
	metrics      MetricsRecorder
	lockTimeout  time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	timeslotRepo TimeslotRepository,
	shopRepo ShopRepository,
	bookingRepo BookingRepository,
	addressRepo AddressRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	lockTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		timeslotRepo: timeslotRepo,
		shopRepo:     shopRepo,
		bookingRepo:  bookingRepo,
		addressRepo:  addressRepo,
		txManager:    txManager,
		metrics:      metrics,
		lockTimeout:  lockTimeout,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование слота.
// Проверки, списание квоты и вставка бронирования выполняются в одной транзакции:
// при любой ошибке квота остается нетронутой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookTimeslot: user=%d, timeslot=%d, type=%s, address=%d",
		req.UserID, req.TimeslotID, req.BookingType, req.AddressID)

	resp, err := uc.execute(ctx, req)
	uc.metrics.RecordBooking(string(req.BookingType), outcomeOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookTimeslot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что адрес принадлежит пользователю
	address, err := uc.addressRepo.GetByID(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, addressRepo.ErrAddressNotFound) {
			uc.logger.Warn("BookTimeslot: address id=%d not found", req.AddressID)
			return nil, ErrAddressNotFound
		}
		uc.logger.Error("BookTimeslot: failed to get address id=%d: %v", req.AddressID, err)
		return nil, fmt.Errorf("%w: failed to get address: %v", ErrInternal, err)
	}
	if address.UserID != req.UserID {
		uc.logger.Warn("BookTimeslot: address id=%d does not belong to user=%d", req.AddressID, req.UserID)
		return nil, ErrAddressNotFound
	}

	now := uc.timeProvider.Now()

	var (
		created   *domain.Booking
		timeslot  *domain.Timeslot
		remaining int
	)

	// 3. Проверки и списание квоты в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Ограничиваем ожидание блокировок
		if err := uc.timeslotRepo.SetLockTimeout(txCtx, uc.lockTimeout); err != nil {
			uc.logger.Error("BookTimeslot: failed to set lock timeout: %v", err)
			return fmt.Errorf("%w: failed to set lock timeout: %v", ErrInternal, err)
		}

		// 3.2. Получаем слот
		timeslot, err = uc.timeslotRepo.GetByID(txCtx, req.TimeslotID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeslotNotFound) {
				uc.logger.Warn("BookTimeslot: timeslot id=%d not found", req.TimeslotID)
				return ErrTimeslotNotFound
			}
			uc.logger.Error("BookTimeslot: failed to get timeslot id=%d: %v", req.TimeslotID, err)
			return fmt.Errorf("%w: failed to get timeslot: %v", ErrInternal, err)
		}

		if !timeslot.StartDatetime.After(now) {
			uc.logger.Warn("BookTimeslot: timeslot id=%d started at %s", timeslot.ID, timeslot.StartDatetime)
			return ErrTimeslotInPast
		}

		// 3.3. Получаем прачечную; разделяемая блокировка ждет завершения изменения расписания
		shop, err := uc.shopRepo.GetForShare(txCtx, timeslot.ShopID)
		if err != nil {
			switch {
			case errors.Is(err, shopRepo.ErrShopNotFound):
				return ErrTimeslotNotFound
			case errors.Is(err, shopRepo.ErrLockTimeout):
				uc.logger.Warn("BookTimeslot: shop id=%d is locked: %v", timeslot.ShopID, err)
				return ErrQuotaContested
			}
			uc.logger.Error("BookTimeslot: failed to get shop id=%d: %v", timeslot.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}

		if !shop.Active {
			uc.logger.Warn("BookTimeslot: shop id=%d is inactive", shop.ID)
			return ErrShopInactive
		}

		// 3.4. Доставка: проверяем бронирование забора и срок стирки
		if req.BookingType == domain.BookingTypeDelivery {
			if err := uc.checkDelivery(txCtx, req, timeslot, shop); err != nil {
				return err
			}
		}

		// 3.5. Один пользователь - одно бронирование на слот
		exists, err := uc.bookingRepo.ExistsForUserAndTimeslot(txCtx, req.UserID, req.TimeslotID)
		if err != nil {
			uc.logger.Error("BookTimeslot: failed to check duplicate booking: %v", err)
			return fmt.Errorf("%w: failed to check duplicate booking: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("BookTimeslot: user=%d already booked timeslot id=%d", req.UserID, req.TimeslotID)
			return ErrDuplicateBooking
		}

		// 3.6. Атомарно списываем квоту
		remaining, err = uc.timeslotRepo.TryReserve(txCtx, req.TimeslotID, req.BookingType)
		if err != nil {
			switch {
			case errors.Is(err, timeslotRepo.ErrQuotaExhausted):
				uc.logger.Warn("BookTimeslot: %s quota of timeslot id=%d exhausted", req.BookingType, req.TimeslotID)
				return ErrQuotaExhausted
			case errors.Is(err, timeslotRepo.ErrLockTimeout):
				uc.logger.Warn("BookTimeslot: timeslot id=%d contested: %v", req.TimeslotID, err)
				return ErrQuotaContested
			case errors.Is(err, timeslotRepo.ErrTimeslotNotFound):
				return ErrTimeslotNotFound
			}
			uc.logger.Error("BookTimeslot: failed to reserve quota: %v", err)
			return fmt.Errorf("%w: failed to reserve quota: %v", ErrInternal, err)
		}

		// 3.7. Создаем бронирование; уникальный индекс закрывает гонку двух запросов одного пользователя
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			TimeslotID:  req.TimeslotID,
			UserID:      req.UserID,
			AddressID:   req.AddressID,
			BookingType: req.BookingType,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				uc.logger.Warn("BookTimeslot: concurrent duplicate booking by user=%d on timeslot id=%d", req.UserID, req.TimeslotID)
				return ErrDuplicateBooking
			}
			uc.logger.Error("BookTimeslot: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookTimeslot: created booking id=%d, %s quota left %d", created.ID, created.BookingType, remaining)

	return &Response{
		ID:             created.ID,
		TimeslotID:     created.TimeslotID,
		UserID:         created.UserID,
		AddressID:      created.AddressID,
		BookingType:    created.BookingType,
		ShopID:         timeslot.ShopID,
		StartDatetime:  timeslot.StartDatetime,
		EndDatetime:    timeslot.EndDatetime,
		RemainingQuota: remaining,
		CreatedAt:      created.CreatedAt,
	}, nil
}

// checkDelivery проверяет бронирование забора, к которому привязывается доставка
func (uc *UseCase) checkDelivery(ctx context.Context, req *Request, timeslot *domain.Timeslot, shop *domain.Shop) error {
	pickup, err := uc.bookingRepo.GetByID(ctx, *req.PickupBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("BookTimeslot: pickup booking id=%d not found", *req.PickupBookingID)
			return ErrPickupBookingNotFound
		}
		uc.logger.Error("BookTimeslot: failed to get pickup booking id=%d: %v", *req.PickupBookingID, err)
		return fmt.Errorf("%w: failed to get pickup booking: %v", ErrInternal, err)
	}

	if err := validateDeliveryTimeslot(pickup, timeslot, shop, req.UserID); err != nil {
		uc.logger.Warn("BookTimeslot: delivery timeslot id=%d rejected: %v", timeslot.ID, err)
		return err
	}

	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeBooked
	case errors.Is(err, ErrDuplicateBooking):
		return outcomeDuplicate
	case errors.Is(err, ErrQuotaExhausted):
		return outcomeExhausted
	case errors.Is(err, ErrQuotaContested):
		return outcomeContested
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}
