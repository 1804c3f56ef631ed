package get_delivery_timeslots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	getDeliveryTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_delivery_timeslots"
)

const (
	msgMissingPickupBookingID = "pickup_booking_id обязателен"
	msgInvalidPickupBookingID = "некорректный pickup_booking_id"
	msgInvalidIsAvailable     = "некорректный параметр is_available"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgPickupNotFound         = "бронирование забора не найдено"
)

type Handler struct {
	useCase GetDeliveryTimeslotsUseCase
	logger  Logger
}

func NewHandler(useCase GetDeliveryTimeslotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET|POST /api/v1/timeslots/delivery
// Query params: pickup_booking_id (required), is_available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s /timeslots/delivery - Missing user ID", r.Method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()

	pickupIDStr := query.Get("pickup_booking_id")
	if pickupIDStr == "" {
		h.logger.Warn("%s /timeslots/delivery - Missing pickup booking ID", r.Method)
		handlers.RespondBadRequest(w, msgMissingPickupBookingID)
		return
	}
	pickupID, err := strconv.ParseInt(pickupIDStr, 10, 64)
	if err != nil || pickupID <= 0 {
		h.logger.Warn("%s /timeslots/delivery - Invalid pickup booking ID: %q", r.Method, pickupIDStr)
		handlers.RespondBadRequest(w, msgInvalidPickupBookingID)
		return
	}

	isAvailable := false
	if value := query.Get("is_available"); value != "" {
		isAvailable, err = strconv.ParseBool(value)
		if err != nil {
			h.logger.Warn("%s /timeslots/delivery - Invalid is_available: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidIsAvailable)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getDeliveryTimeslots.Request{
		UserID:          userID,
		PickupBookingID: pickupID,
		IsAvailable:     isAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDeliveryTimeslots.ErrPickupBookingNotFound):
			h.logger.Warn("%s /timeslots/delivery - Pickup booking not found: booking_id=%d, user_id=%d", r.Method, pickupID, userID)
			handlers.RespondNotFound(w, msgPickupNotFound)

		case errors.Is(err, getDeliveryTimeslots.ErrInvalidInput):
			h.logger.Warn("%s /timeslots/delivery - Invalid input: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidPickupBookingID)

		default:
			h.logger.Error("%s /timeslots/delivery - Failed to list timeslots: booking_id=%d, error=%v", r.Method, pickupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /timeslots/delivery - Timeslots retrieved: booking_id=%d, days=%d", r.Method, pickupID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
