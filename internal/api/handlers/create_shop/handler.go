package create_shop

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/shops
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /shops - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateShopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shops - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	shop, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, shops.ErrInvalidScheduleConfiguration):
			h.logger.Warn("POST /shops - Invalid schedule: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeInvalidScheduleConfiguration, msgInvalidSchedule)
		case errors.Is(err, shops.ErrInvalidInput):
			h.logger.Warn("POST /shops - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		default:
			h.logger.Error("POST /shops - Failed to create shop: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /shops - Shop created successfully: shop_id=%d, user_id=%d", shop.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, shop)
}
