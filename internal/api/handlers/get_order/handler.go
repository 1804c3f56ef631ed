package get_order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
)

const (
	msgInvalidOrderID = "некорректный ID заказа"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgOrderNotFound  = "заказ не найден"
	msgAccessDenied   = "нет доступа к заказу"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /orders/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("GET /orders/{id} - Invalid order ID: %v", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID, userID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id} - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /orders/{id} - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /orders/{id} - Failed to get order: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, order)
}
