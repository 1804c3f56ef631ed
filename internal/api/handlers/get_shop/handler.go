package get_shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
)

const (
	msgInvalidShopID = "некорректный ID прачечной"
	msgShopNotFound  = "прачечная не найдена"
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

// Handle GET /api/v1/shops/{shopId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shopID, err := strconv.ParseInt(mux.Vars(r)["shopId"], 10, 64)
	if err != nil || shopID <= 0 {
		h.logger.Warn("GET /shops/{id} - Invalid shop ID: %v", mux.Vars(r)["shopId"])
		handlers.RespondBadRequest(w, msgInvalidShopID)
		return
	}

	shop, err := h.service.GetByID(r.Context(), shopID)
	if err != nil {
		if errors.Is(err, shops.ErrShopNotFound) {
			h.logger.Warn("GET /shops/{id} - Shop not found: shop_id=%d", shopID)
			handlers.RespondNotFound(w, msgShopNotFound)
			return
		}
		h.logger.Error("GET /shops/{id} - Failed to get shop: shop_id=%d, error=%v", shopID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, shop)
}
