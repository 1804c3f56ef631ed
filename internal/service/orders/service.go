package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
)

// Service сервис для работы с заказами
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// GetByID получает заказ с позициями
// Доступен владельцу заказа и владельцу прачечной, обслуживающей заказ
func (s *Service) GetByID(ctx context.Context, orderID, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", orderID, userID)

	order, err := s.getOrder(ctx, "GetByID", orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != userID {
		if err := s.checkShopOwner(ctx, "GetByID", orderID, userID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainOrder(order), nil
}

// ListByUser получает заказы пользователя
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.OrderListResponse, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: fetched %d orders for user=%d", len(orders), userID)
	return models.FromDomainOrderList(orders), nil
}

// UpdateStatus переводит оплаченный заказ в picked или delivered.
// Доступно только владельцу прачечной. Статус заказа никогда не откатывается назад:
// обновление условное, поэтому параллельные запросы не могут вернуть заказ в прошлый статус.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, req *models.UpdateStatusRequest) (*models.OrderResponse, error) {
	s.logger.Info("UpdateStatus: order id=%d to status=%s by user=%d", orderID, req.OrderStatus, req.UserID)

	// 1. Проверяем статус
	next := domain.OrderStatus(req.OrderStatus)
	if !next.IsAdministrative() {
		s.logger.Warn("UpdateStatus: status=%s cannot be set by shop owner", req.OrderStatus)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.OrderStatus)
	}

	// 2. Проверяем права доступа
	if err := s.checkShopOwner(ctx, "UpdateStatus", orderID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Проверяем переход по текущему статусу
	order, err := s.getOrder(ctx, "UpdateStatus", orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusPaymentPending {
		s.logger.Warn("UpdateStatus: order id=%d is not paid", orderID)
		return nil, ErrOrderNotPaid
	}
	if !order.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: order id=%d cannot move from %s to %s", orderID, order.Status, next)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, order.Status, next)
	}

	// 4. Условно обновляем: только из оплаченных статусов, предшествующих next
	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, paidStatusesBefore(next), next)
	if err != nil {
		s.logger.Error("UpdateStatus: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}
	if !updated {
		s.logger.Warn("UpdateStatus: order id=%d was moved concurrently", orderID)
		return nil, fmt.Errorf("%w: order status changed concurrently", ErrInvalidStatusTransition)
	}

	order.Status = next
	s.logger.Info("UpdateStatus: order id=%d moved to %s", orderID, next)
	return models.FromDomainOrder(order), nil
}

// Вспомогательные методы

func (s *Service) getOrder(ctx context.Context, op string, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", op, orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: repository error for order id=%d: %v", op, orderID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return order, nil
}

// checkShopOwner проверяет, что пользователь владеет прачечной заказа
func (s *Service) checkShopOwner(ctx context.Context, op string, orderID, userID int64) error {
	ownerID, err := s.orderRepo.GetShopOwnerID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		s.logger.Error("%s: failed to get shop owner of order id=%d: %v", op, orderID, err)
		return fmt.Errorf("%w: %s - get shop owner: %v", ErrInternal, op, err)
	}

	if ownerID != userID {
		s.logger.Warn("%s: user=%d has no access to order id=%d", op, userID, orderID)
		return ErrAccessDenied
	}

	return nil
}

// paidStatusesBefore возвращает оплаченные статусы, из которых достижим next
func paidStatusesBefore(next domain.OrderStatus) []domain.OrderStatus {
	result := make([]domain.OrderStatus, 0)
	for _, status := range domain.PreviousStatuses(next) {
		if status != domain.OrderStatusPaymentPending {
			result = append(result, status)
		}
	}
	return result
}
