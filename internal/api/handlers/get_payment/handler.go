package get_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments"
)

const (
	msgInvalidOrderID  = "некорректный ID заказа"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgOrderNotFound   = "заказ не найден"
	msgPaymentNotFound = "платеж по заказу не найден"
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

// Handle GET /api/v1/orders/{orderId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("GET /orders/{id}/payments - Invalid order ID: %v", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	payment, err := h.service.GetByOrderID(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id}/payments - Order not found: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondNotFound(w, msgOrderNotFound)
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("GET /orders/{id}/payments - Payment not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgPaymentNotFound)
		default:
			h.logger.Error("GET /orders/{id}/payments - Failed to get payment: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, payment)
}
