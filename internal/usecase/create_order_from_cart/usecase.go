package create_order_from_cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
)

// UseCase use case оформления заказа из корзины
type UseCase struct {
	cartRepo    CartRepository
	orderRepo   OrderRepository
	bookingRepo BookingRepository
	shopRepo    ShopRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cartRepo CartRepository,
	orderRepo OrderRepository,
	bookingRepo BookingRepository,
	shopRepo ShopRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		bookingRepo: bookingRepo,
		shopRepo:    shopRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute оформляет заказ из корзины пользователя.
// Снимок цен, заказ с позициями, очистка корзины и обнуление ее суммы выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateOrderFromCart: user=%d, pickup=%d, delivery=%d",
		req.UserID, req.PickupBookingID, req.DeliveryBookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateOrderFromCart: validation failed: %v", err)
		return nil, err
	}

	var created *domain.Order

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Проверяем бронирования
		pickup, err := uc.getOwnedBooking(txCtx, req.PickupBookingID, req.UserID, domain.BookingTypePickUp)
		if err != nil {
			return err
		}
		delivery, err := uc.getOwnedBooking(txCtx, req.DeliveryBookingID, req.UserID, domain.BookingTypeDelivery)
		if err != nil {
			return err
		}

		shop, err := uc.shopRepo.GetByID(txCtx, pickup.ShopID)
		if err != nil {
			uc.logger.Error("CreateOrderFromCart: failed to get shop id=%d: %v", pickup.ShopID, err)
			return fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
		}
		if err := validateBookingPair(pickup, delivery, shop); err != nil {
			uc.logger.Warn("CreateOrderFromCart: %v", err)
			return err
		}

		// 3. Блокируем корзину и фиксируем цены
		lines, err := uc.cartRepo.ListForUpdate(txCtx, req.UserID)
		if err != nil {
			uc.logger.Error("CreateOrderFromCart: failed to read cart of user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to read cart: %v", ErrInternal, err)
		}
		if len(lines) == 0 {
			uc.logger.Warn("CreateOrderFromCart: cart of user=%d is empty", req.UserID)
			return ErrCartEmpty
		}

		details := snapshotDetails(lines)

		// 4. Создаем заказ с позициями
		created, err = uc.orderRepo.Create(txCtx, &domain.Order{
			UserID:            req.UserID,
			PickupBookingID:   pickup.ID,
			DeliveryBookingID: delivery.ID,
			TotalPrice:        domain.TotalOf(details),
			Status:            domain.InitialOrderStatus,
			Details:           details,
		})
		if err != nil {
			if errors.Is(err, orderRepo.ErrBookingAlreadyOrdered) {
				uc.logger.Warn("CreateOrderFromCart: bookings of user=%d are already ordered", req.UserID)
				return ErrBookingAlreadyOrdered
			}
			uc.logger.Error("CreateOrderFromCart: failed to create order: %v", err)
			return fmt.Errorf("%w: failed to create order: %v", ErrInternal, err)
		}

		// 5. Очищаем корзину и обнуляем ее сумму
		if _, err := uc.cartRepo.Clear(txCtx, req.UserID); err != nil {
			uc.logger.Error("CreateOrderFromCart: failed to clear cart of user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to clear cart: %v", ErrInternal, err)
		}
		if err := uc.cartRepo.ResetTotal(txCtx, req.UserID); err != nil {
			uc.logger.Error("CreateOrderFromCart: failed to reset cart total of user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to reset cart total: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateOrderFromCart: created order id=%d with %d details, total=%s",
		created.ID, len(created.Details), created.TotalPrice)
	return &Response{Order: created}, nil
}

// getOwnedBooking получает бронирование пользователя нужного типа
func (uc *UseCase) getOwnedBooking(ctx context.Context, bookingID, userID int64, bookingType domain.BookingType) (*domain.BookingDetails, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateOrderFromCart: booking id=%d not found", bookingID)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
		}
		uc.logger.Error("CreateOrderFromCart: failed to get booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsOwnedBy(userID) || booking.BookingType != bookingType {
		uc.logger.Warn("CreateOrderFromCart: booking id=%d is not a %s of user=%d", bookingID, bookingType, userID)
		return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, bookingID)
	}

	return booking, nil
}
