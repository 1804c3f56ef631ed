package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	bookTimeslot "github.com/m04kA/SMC-LaundryService/internal/usecase/book_timeslot"
)

const (
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgMissingUserID           = "отсутствует ID пользователя"
	msgAddressNotFound         = "адрес не найден"
	msgTimeslotNotFound        = "слот не найден"
	msgTimeslotInPast          = "слот уже начался"
	msgShopInactive            = "прачечная не принимает бронирования"
	msgPickupNotFound          = "бронирование забора не найдено"
	msgInvalidDeliveryTimeslot = "слот доставки должен начинаться не раньше окончания стирки в той же прачечной"
	msgDuplicateBooking        = "вы уже забронировали этот слот"
	msgQuotaExhausted          = "в слоте не осталось мест"
	msgQuotaContested          = "слот сейчас бронируют другие пользователи, повторите запрос"
)

type Handler struct {
	useCase BookTimeslotUseCase
	logger  Logger
}

func NewHandler(useCase BookTimeslotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookTimeslot.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookTimeslot.ErrAddressNotFound):
			h.logger.Warn("POST /bookings - Address not found: user_id=%d, address_id=%d", userID, req.AddressID)
			handlers.RespondNotFound(w, msgAddressNotFound)

		case errors.Is(err, bookTimeslot.ErrTimeslotNotFound):
			h.logger.Warn("POST /bookings - Timeslot not found: timeslot_id=%d", req.TimeslotID)
			handlers.RespondNotFound(w, msgTimeslotNotFound)

		case errors.Is(err, bookTimeslot.ErrPickupBookingNotFound):
			h.logger.Warn("POST /bookings - Pickup booking not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgPickupNotFound)

		case errors.Is(err, bookTimeslot.ErrTimeslotInPast):
			h.logger.Warn("POST /bookings - Timeslot in past: timeslot_id=%d", req.TimeslotID)
			handlers.RespondBadRequest(w, msgTimeslotInPast)

		case errors.Is(err, bookTimeslot.ErrShopInactive):
			h.logger.Warn("POST /bookings - Shop inactive: timeslot_id=%d", req.TimeslotID)
			handlers.RespondBadRequest(w, msgShopInactive)

		case errors.Is(err, bookTimeslot.ErrInvalidDeliveryTimeslot):
			h.logger.Warn("POST /bookings - Invalid delivery timeslot: user_id=%d, timeslot_id=%d", userID, req.TimeslotID)
			handlers.RespondBadRequest(w, msgInvalidDeliveryTimeslot)

		case errors.Is(err, bookTimeslot.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, timeslot_id=%d", userID, req.TimeslotID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, bookTimeslot.ErrQuotaExhausted):
			h.logger.Warn("POST /bookings - Quota exhausted: timeslot_id=%d, type=%s", req.TimeslotID, req.BookingType)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeQuotaExhausted, msgQuotaExhausted)

		case errors.Is(err, bookTimeslot.ErrQuotaContested):
			h.logger.Warn("POST /bookings - Quota contested: timeslot_id=%d", req.TimeslotID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeQuotaContested, msgQuotaContested)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, timeslot_id=%d, error=%v",
				userID, req.TimeslotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, timeslot_id=%d",
		result.ID, userID, result.TimeslotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
