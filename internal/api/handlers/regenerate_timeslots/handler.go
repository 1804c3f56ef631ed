package regenerate_timeslots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
)

const (
	msgInvalidShopID = "некорректный ID прачечной"
	msgMissingUserID = "отсутствует ID пользователя"
	msgShopNotFound  = "прачечная не найдена"
	msgAccessDenied  = "пересоздать слоты может только владелец"
)

type Handler struct {
	service ShopService
	logger  Logger
}

func NewHandler(service ShopService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/shops/{shopId}/timeslots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id}/timeslots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("PUT /shops/{id}/timeslots - Invalid shop ID: %v", mux.Vars(r)["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	result, err := h.service.RegenerateTimeslots(r.Context(), shopID, userID)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id}/timeslots - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id}/timeslots - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("PUT /shops/{id}/timeslots - Failed to regenerate: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id}/timeslots - Regenerated: shop_id=%d, purged=%d, generated=%d, reconciled=%d",
		shopID, result.Purged, result.Generated, result.Reconciled)
	handlers.RespondJSON(w, http.StatusOK, result)
}
