package update_order_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
)

const (
	msgInvalidOrderID     = "некорректный ID заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOrderNotFound      = "заказ не найден"
	msgAccessDenied       = "менять статус может только владелец прачечной"
	msgInvalidStatus      = "order_status должен быть picked или delivered"
	msgOrderNotPaid       = "заказ еще не оплачен"
	msgInvalidTransition  = "заказ уже находится в этом или более позднем статусе"
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

// Handle PATCH /api/v1/orders/{orderId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /orders/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil || orderID <= 0 {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid order ID: %v", mux.Vars(r)["orderId"])
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /orders/{id}/status - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}
	req.UserID = userID

	order, err := h.service.UpdateStatus(r.Context(), orderID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			h.logger.Warn("PATCH /orders/{id}/status - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)
		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("PATCH /orders/{id}/status - Access denied: order_id=%d, user_id=%d", orderID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, orders.ErrInvalidStatus):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid status: order_id=%d, status=%s", orderID, req.OrderStatus)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, orders.ErrOrderNotPaid):
			h.logger.Warn("PATCH /orders/{id}/status - Order not paid: order_id=%d", orderID)
			handlers.RespondConflict(w, msgOrderNotPaid)
		case errors.Is(err, orders.ErrInvalidStatusTransition):
			h.logger.Warn("PATCH /orders/{id}/status - Invalid transition: order_id=%d, status=%s", orderID, req.OrderStatus)
			handlers.RespondConflict(w, msgInvalidTransition)
		default:
			h.logger.Error("PATCH /orders/{id}/status - Failed to update status: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /orders/{id}/status - Status updated: order_id=%d, status=%s", orderID, order.OrderStatus)
	handlers.RespondJSON(w, http.StatusOK, order)
}
