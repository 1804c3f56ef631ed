package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidBookingType = "booking_type должен быть pick_up или delivery"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?booking_type=pick_up
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserBookingsRequest{UserID: userID}
	if bookingType := r.URL.Query().Get("booking_type"); bookingType != "" {
		req.BookingType = &bookingType
	}

	result, err := h.service.GetUserBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid booking type: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingType)
			return
		}
		h.logger.Error("GET /bookings - Failed to list bookings: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
