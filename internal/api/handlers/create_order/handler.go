package create_order

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
	createOrder "github.com/m04kA/SMC-LaundryService/internal/usecase/create_order_from_cart"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCartEmpty          = "корзина пуста"
	msgBookingNotFound    = "бронирование не найдено"
	msgBookingsMismatch   = "доставка должна быть в той же прачечной и не раньше окончания стирки"
	msgAlreadyOrdered     = "бронирование уже использовано в другом заказе"
)

type Handler struct {
	useCase CreateOrderUseCase
	logger  Logger
}

func NewHandler(useCase CreateOrderUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/orders/from-cart
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /orders/from-cart - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateOrderRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /orders/from-cart - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createOrder.ErrInvalidInput):
			h.logger.Warn("POST /orders/from-cart - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, createOrder.ErrCartEmpty):
			h.logger.Warn("POST /orders/from-cart - Cart is empty: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCartEmpty)
		case errors.Is(err, createOrder.ErrBookingsMismatch):
			h.logger.Warn("POST /orders/from-cart - Bookings mismatch: pickup=%d, delivery=%d",
				req.PickupBookingID, req.DeliveryBookingID)
			handlers.RespondBadRequest(w, msgBookingsMismatch)
		case errors.Is(err, createOrder.ErrBookingNotFound):
			h.logger.Warn("POST /orders/from-cart - Booking not found: user_id=%d, error=%v", userID, err)
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, createOrder.ErrBookingAlreadyOrdered):
			h.logger.Warn("POST /orders/from-cart - Booking already ordered: pickup=%d, delivery=%d",
				req.PickupBookingID, req.DeliveryBookingID)
			handlers.RespondConflict(w, msgAlreadyOrdered)
		default:
			h.logger.Error("POST /orders/from-cart - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /orders/from-cart - Order created successfully: order_id=%d, user_id=%d, total=%s",
		result.Order.ID, userID, result.Order.TotalPrice.String())
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainOrder(result.Order))
}
