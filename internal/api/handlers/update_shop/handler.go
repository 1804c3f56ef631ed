package update_shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

const (
	msgInvalidShopID      = "некорректный ID прачечной"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgShopNotFound       = "прачечная не найдена"
	msgAccessDenied       = "изменять прачечную может только владелец"
	msgInvalidSchedule    = "некорректное расписание прачечной"
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

// Handle PUT /api/v1/shops/{shopId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /shops/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("PUT /shops/{id} - Invalid shop ID: %v", mux.Vars(r)["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	var req models.UpdateShopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /shops/{id} - Invalid request body: shop_id=%d, error=%v", shopID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	shop, err := h.service.Update(r.Context(), shopID, &req)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrShopNotFound):
			h.logger.Warn("PUT /shops/{id} - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
		case errors.Is(err, shops.ErrAccessDenied):
			h.logger.Warn("PUT /shops/{id} - Access denied: shop_id=%d, user_id=%d", shopID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, shops.ErrInvalidScheduleConfiguration):
			h.logger.Warn("PUT /shops/{id} - Invalid schedule: shop_id=%d, error=%v", shopID, err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidScheduleConfiguration, msgInvalidSchedule)
		default:
			h.logger.Error("PUT /shops/{id} - Failed to update shop: shop_id=%d, error=%v", shopID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /shops/{id} - Shop updated successfully: shop_id=%d", shopID)
	handlers.RespondJSON(w, http.StatusOK, shop)
}
