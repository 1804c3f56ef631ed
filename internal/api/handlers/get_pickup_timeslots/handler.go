package get_pickup_timeslots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	getPickupTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_pickup_timeslots"
)

const (
	msgInvalidParam     = "некорректный параметр запроса: "
	msgInvalidInput     = "некорректные параметры запроса"
	msgInvalidDateRange = "некорректный период: конец раньше начала или период длиннее 60 дней"
)

type Handler struct {
	useCase  GetPickupTimeslotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetPickupTimeslotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET|POST /api/v1/timeslots/pickup
// Query params: shop_id, is_available, start_date, end_date (YYYY-MM-DD), все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, param, err := ToUseCaseRequest(r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("%s /timeslots/pickup - Invalid %s: %v", r.Method, param, err)
		handlers.RespondBadRequest(w, msgInvalidParam+param)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getPickupTimeslots.ErrInvalidInput):
			h.logger.Warn("%s /timeslots/pickup - Invalid input: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getPickupTimeslots.ErrInvalidDateRange):
			h.logger.Warn("%s /timeslots/pickup - Invalid date range: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("%s /timeslots/pickup - Failed to list timeslots: %v", r.Method, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /timeslots/pickup - Timeslots retrieved: days=%d", r.Method, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
