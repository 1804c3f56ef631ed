package payment_callback

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/paymentgateway"
	confirmPayment "github.com/m04kA/SMC-LaundryService/internal/usecase/confirm_payment"
)

// SignatureHeader заголовок с подписью платежного шлюза
const SignatureHeader = "Stripe-Signature"

const (
	msgInvalidPayload   = "некорректное тело callback"
	msgInvalidSignature = "подпись callback не прошла проверку"
	msgPaymentNotFound  = "платеж не найден"
	msgAmountMismatch   = "сумма платежа не совпадает с заказом"
)

type Handler struct {
	verifier SignatureVerifier
	useCase  ConfirmPaymentUseCase
	logger   Logger
}

func NewHandler(verifier SignatureVerifier, useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/payments/callback
// Вызывается платежным шлюзом, аутентификация по подписи тела запроса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/callback - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	// 1. Проверяем подпись и разбираем событие
	confirmation, err := h.verifier.Parse(payload, r.Header.Get(SignatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, paymentgateway.ErrSignatureInvalid):
			h.logger.Warn("POST /payments/callback - Invalid signature: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodePaymentSignatureInvalid, msgInvalidSignature)
		case errors.Is(err, paymentgateway.ErrUnsupportedEvent):
			h.logger.Info("POST /payments/callback - Event ignored: %v", err)
			handlers.RespondJSON(w, http.StatusOK, &CallbackResponse{Status: statusIgnored})
		default:
			h.logger.Warn("POST /payments/callback - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		}
		return
	}

	req := ToUseCaseRequest(confirmation)

	// 2. Применяем итог платежа
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/callback - Payment not found: payment_id=%d", req.PaymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)
		case errors.Is(err, confirmPayment.ErrAmountMismatch):
			h.logger.Warn("POST /payments/callback - Amount mismatch: payment_id=%d, amount=%d %s", req.PaymentID, req.Amount, req.Currency)
			handlers.RespondBadRequest(w, msgAmountMismatch)
		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("POST /payments/callback - Invalid input: payment_id=%d, error=%v", req.PaymentID, err)
			handlers.RespondBadRequest(w, msgInvalidPayload)
		default:
			h.logger.Error("POST /payments/callback - Failed to confirm payment: payment_id=%d, error=%v", req.PaymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Payment confirmed: payment_id=%d, order_id=%d, status=%s, applied=%t",
		result.PaymentID, result.OrderID, result.Status, result.Applied)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
