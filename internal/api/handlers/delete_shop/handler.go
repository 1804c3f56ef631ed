package delete_shop

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
	msgAccessDenied  = "удалить прачечную может только владелец"
	msgHasBookings   = "у прачечной есть бронирования, деактивируйте ее вместо удаления"
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

// Handle DELETE /api/v1/shops/{shopId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /shops/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("DELETE /shops/{id} - Invalid shop ID: %v", mux.Vars(r)["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	if err := h.service.Delete(r.Context(), shopID, userID); err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			h.logger.Warn("DELETE /shops/{id} - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("DELETE /shops/{id} - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrShopHasBookings):
			h.logger.Warn("DELETE /shops/{id} - Shop has bookings: shop_id=%d", shopID)
			handlers.RespondConflict(w, msgHasBookings)
		default:
			h.logger.Error("DELETE /shops/{id} - Failed to delete shop: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /shops/{id} - Shop deleted successfully: shop_id=%d", shopID)
	w.WriteHeader(http.StatusNoContent)
}
