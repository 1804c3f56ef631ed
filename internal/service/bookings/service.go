package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeslotRepo TimeslotRepository
	orderRepo    OrderRepository
	shopRepo     ShopRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeslotRepo TimeslotRepository,
	orderRepo OrderRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeslotRepo: timeslotRepo,
		orderRepo:    orderRepo,
		shopRepo:     shopRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть своё бронирование, владелец прачечной - бронирования на ее слоты
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по типу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, type=%v", req.UserID, req.BookingType)

	var bookingType *domain.BookingType
	if req.BookingType != nil {
		bt, ok := models.ToDomainBookingType(*req.BookingType)
		if !ok {
			s.logger.Warn("GetUserBookings: invalid booking type=%s for user=%d", *req.BookingType, req.UserID)
			return nil, fmt.Errorf("%w: invalid booking type", ErrInvalidInput)
		}
		bookingType = &bt
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, req.UserID, bookingType)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel удаляет бронирование пользователя и возвращает квоту слота.
// Бронирование, уже привязанное к заказу или со слотом, который уже начался, отменить нельзя.
// Удаление и возврат квоты выполняются в одной транзакции.
func (s *Service) Cancel(ctx context.Context, bookingID, userID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование и проверяем владельца
		booking, err := s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}
		if !booking.IsOwnedBy(userID) {
			s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}

		// 2. Слот еще не начался
		if !booking.StartDatetime.After(s.timeProvider.Now()) {
			s.logger.Warn("Cancel: timeslot of booking id=%d started at %s", bookingID, booking.StartDatetime)
			return ErrBookingStarted
		}

		// 3. Бронирование не должно быть привязано к заказу
		ordered, err := s.orderRepo.ExistsForBooking(txCtx, bookingID)
		if err != nil {
			s.logger.Error("Cancel: failed to check orders of booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - check orders: %v", ErrInternal, err)
		}
		if ordered {
			s.logger.Warn("Cancel: booking id=%d is attached to an order", bookingID)
			return ErrCannotCancel
		}

		// 4. Удаляем бронирование
		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrBookingInUse):
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: failed to delete booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - delete booking: %v", ErrInternal, err)
		}

		// 5. Возвращаем квоту
		if err := s.timeslotRepo.Release(txCtx, booking.TimeslotID, booking.BookingType); err != nil {
			s.logger.Error("Cancel: failed to release quota of timeslot id=%d: %v", booking.TimeslotID, err)
			return fmt.Errorf("%w: Cancel - release quota: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.BookingDetails, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь - владелец бронирования или владелец прачечной
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.BookingDetails, userID int64) error {
	if booking.IsOwnedBy(userID) {
		return nil
	}

	shop, err := s.shopRepo.GetByID(ctx, booking.ShopID)
	if err != nil {
		s.logger.Warn("checkUserAccess: failed to get shop id=%d: %v", booking.ShopID, err)
		return ErrAccessDenied
	}
	if !shop.IsOwnedBy(userID) {
		return ErrAccessDenied
	}

	return nil
}
