package create_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments/models"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "source должен быть card, bank_transaction или upi"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrderNotFound      = "заказ не найден"
	msgOrderNotPayable    = "заказ не ожидает оплаты"
	msgPaymentExists      = "платеж по заказу уже создан"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/{orderId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("POST /orders/{id}/payments - Invalid order ID: %v", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req models.CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders/{id}/payments - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.OrderID = orderID

	payment, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /orders/{id}/payments - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, payments.ErrOrderNotFound):
			h.logger.Warn("POST /orders/{id}/payments - Order not found: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondNotFound(w, msgOrderNotFound)
		case errors.Is(err, payments.ErrOrderNotPayable):
			h.logger.Warn("POST /orders/{id}/payments - Order not payable: order_id=%d", orderID)
			handlers.RespondConflict(w, msgOrderNotPayable)
		case errors.Is(err, payments.ErrPaymentExists):
			h.logger.Warn("POST /orders/{id}/payments - Payment exists: order_id=%d", orderID)
			handlers.RespondConflict(w, msgPaymentExists)
		default:
			h.logger.Error("POST /orders/{id}/payments - Failed to create payment: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/{id}/payments - Payment created: payment_id=%d, order_id=%d, amount=%s",
		payment.ID, orderID, payment.Amount.String())
	handlers.RespondJSON(w, http.StatusCreated, payment)
}
