package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/events"
	paymentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/payment"
)

// minorUnitsExp число знаков минимальной единицы валюты
const minorUnitsExp = 2

// UseCase use case подтверждения платежа по callback платежного шлюза
type UseCase struct {
	paymentRepo PaymentRepository
	orderRepo   OrderRepository
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     MetricsRecorder
	currency    string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics MetricsRecorder,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		currency:    currency,
		logger:      logger,
	}
}

// Execute переводит платеж из pending в success или failed.
// При успехе заказ переходит payment_pending -> placed в той же транзакции.
// Повторный callback ничего не меняет и возвращает Applied = false.
// События публикуются только после фиксации транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: payment id=%d, succeeded=%t", req.PaymentID, req.Succeeded)

	// 1. Валидация входных данных
	if req.PaymentID <= 0 {
		return nil, fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	status := domain.PaymentStatusFailed
	if req.Succeeded {
		status = domain.PaymentStatusSuccess
	}

	var payment *domain.Payment
	var applied bool

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// 2. Получаем платеж
		payment, err = uc.paymentRepo.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				uc.logger.Warn("ConfirmPayment: payment id=%d not found", req.PaymentID)
				return ErrPaymentNotFound
			}
			uc.logger.Error("ConfirmPayment: failed to get payment id=%d: %v", req.PaymentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		// 3. Успешная оплата должна покрывать ровно сумму платежа в валюте сервиса
		if req.Succeeded && !uc.amountMatches(payment, req) {
			uc.logger.Warn("ConfirmPayment: payment id=%d expects %s %s, gateway reported %d %s",
				payment.ID, payment.Amount, uc.currency, req.Amount, req.Currency)
			return ErrAmountMismatch
		}

		// 4. Условный переход pending -> итоговый статус
		applied, err = uc.paymentRepo.MarkStatus(txCtx, payment.ID, status, req.GatewayReference)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to mark payment id=%d: %v", payment.ID, err)
			return fmt.Errorf("%w: failed to mark payment: %v", ErrInternal, err)
		}
		if !applied {
			return nil
		}

		// 5. Оплаченный заказ переходит в placed
		if !req.Succeeded {
			return nil
		}

		moved, err := uc.orderRepo.UpdateStatus(txCtx, payment.OrderID,
			[]domain.OrderStatus{domain.OrderStatusPaymentPending}, domain.OrderStatusPlaced)
		if err != nil {
			uc.logger.Error("ConfirmPayment: failed to place order id=%d: %v", payment.OrderID, err)
			return fmt.Errorf("%w: failed to place order: %v", ErrInternal, err)
		}
		if !moved {
			uc.logger.Warn("ConfirmPayment: order id=%d is no longer payment_pending", payment.OrderID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		uc.logger.Info("ConfirmPayment: payment id=%d already in status %s, replay ignored", payment.ID, payment.Status)
		return &Response{PaymentID: payment.ID, OrderID: payment.OrderID, Status: payment.Status, Applied: false}, nil
	}

	uc.metrics.RecordPayment(string(status))
	uc.publish(ctx, payment, status)

	uc.logger.Info("ConfirmPayment: payment id=%d of order id=%d is %s", payment.ID, payment.OrderID, status)
	return &Response{PaymentID: payment.ID, OrderID: payment.OrderID, Status: status, Applied: true}, nil
}

// amountMatches сравнивает сумму шлюза (минимальные единицы) с суммой платежа
func (uc *UseCase) amountMatches(payment *domain.Payment, req *Request) bool {
	if !strings.EqualFold(req.Currency, uc.currency) {
		return false
	}
	return payment.Amount.Shift(minorUnitsExp).Equal(decimal.NewFromInt(req.Amount))
}

// publish отправляет событие об итоге платежа. Ошибка публикации не откатывает подтверждение.
func (uc *UseCase) publish(ctx context.Context, payment *domain.Payment, status domain.PaymentStatus) {
	var err error
	if status == domain.PaymentStatusSuccess {
		err = uc.publisher.Publish(ctx, events.RoutingKeyOrderPlaced, events.OrderPlaced{
			OrderID:   payment.OrderID,
			UserID:    payment.UserID,
			PaymentID: payment.ID,
			Amount:    payment.Amount,
		})
	} else {
		err = uc.publisher.Publish(ctx, events.RoutingKeyPaymentFailed, events.PaymentFailed{
			OrderID:   payment.OrderID,
			UserID:    payment.UserID,
			PaymentID: payment.ID,
		})
	}

	if err != nil {
		uc.logger.Error("ConfirmPayment: failed to publish event for payment id=%d: %v", payment.ID, err)
	}
}
