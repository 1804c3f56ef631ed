package refresh_timeslots

import (
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots/models"
)

type Handler struct {
	service TimeslotService
	logger  Logger
}

func NewHandler(service TimeslotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/timeslots/refresh
// Сдвигает горизонт слотов всех активных прачечных, как ежедневная задача
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.RefreshAll(r.Context())
	if err != nil {
		h.logger.Error("PUT /timeslots/refresh - Failed to refresh timeslots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	if len(result.Failed) > 0 {
		h.logger.Warn("PUT /timeslots/refresh - Refresh failed for shops %v", result.Failed)
	}

	h.logger.Info("PUT /timeslots/refresh - Timeslots refreshed: shops=%d, generated=%d", result.Shops, result.Generated)
	handlers.RespondJSON(w, http.StatusOK, &models.RefreshResponse{
		Shops:     result.Shops,
		Generated: result.Generated,
		Failed:    result.Failed,
	})
}
