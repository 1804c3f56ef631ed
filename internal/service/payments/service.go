package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	paymentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments/models"
)

// Service сервис платежей
type Service struct {
	orderRepo   OrderRepository
	paymentRepo PaymentRepository
	currency    string
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(orderRepo OrderRepository, paymentRepo PaymentRepository, currency string, logger Logger) *Service {
	return &Service{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		currency:    currency,
		logger:      logger,
	}
}

// Create создает платеж в статусе pending на всю сумму заказа.
// Сумма берется из заказа, клиент ее не передает.
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Create: payment for order id=%d by user=%d, source=%s", req.OrderID, req.UserID, req.Source)

	// 1. Валидация входных данных
	source := domain.PaymentSource(req.Source)
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment source %q", ErrInvalidInput, req.Source)
	}

	// 2. Заказ должен принадлежать пользователю и ожидать оплаты
	order, err := s.getOwnedOrder(ctx, "Create", req.OrderID, req.UserID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPaymentPending {
		s.logger.Warn("Create: order id=%d is in status %s", order.ID, order.Status)
		return nil, ErrOrderNotPayable
	}

	// 3. Создаем платеж
	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.TotalPrice,
		Source:  source,
		Status:  domain.PaymentStatusPending,
	})
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentExists) {
			s.logger.Warn("Create: order id=%d already has a payment", order.ID)
			return nil, ErrPaymentExists
		}
		s.logger.Error("Create: repository error for order id=%d: %v", order.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created payment id=%d for order id=%d, amount=%s", payment.ID, order.ID, payment.Amount)
	return models.FromDomainPayment(payment, s.currency), nil
}

// GetByOrderID получает платеж заказа пользователя
func (s *Service) GetByOrderID(ctx context.Context, orderID, userID int64) (*models.PaymentResponse, error) {
	if _, err := s.getOwnedOrder(ctx, "GetByOrderID", orderID, userID); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByOrderID: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByOrderID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(payment, s.currency), nil
}

func (s *Service) getOwnedOrder(ctx context.Context, op string, orderID, userID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("%s: order id=%d not found", op, orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("%s: failed to get order id=%d: %v", op, orderID, err)
		return nil, fmt.Errorf("%w: %s - get order: %v", ErrInternal, op, err)
	}

	// Чужой заказ неотличим от несуществующего
	if order.UserID != userID {
		s.logger.Warn("%s: order id=%d does not belong to user=%d", op, orderID, userID)
		return nil, ErrOrderNotFound
	}

	return order, nil
}
