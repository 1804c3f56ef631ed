package get_shop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) GetByID(_ context.Context, shopID int64) (*models.ShopResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ShopResponse{ID: shopID}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"ok", "1", nil, http.StatusOK},
		{"bad id", "x", nil, http.StatusBadRequest},
		{"not found", "2", shops.ErrShopNotFound, http.StatusNotFound},
		{"internal", "2", shops.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+tt.id, nil),
				map[string]string{"shopId": tt.id})
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
