package regenerate_timeslots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) RegenerateTimeslots(_ context.Context, shopID, _ int64) (*models.RegenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.RegenerateResponse{ShopID: shopID, Purged: 21, Generated: 14, Reconciled: 1}, nil
}

func request() *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/shops/1/timeslots", nil)
	r = mux.SetURLVars(r, map[string]string{"shopId": "1"})
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, request())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RegenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(14), resp.Generated)
	assert.Equal(t, int64(1), resp.Reconciled)
}

func TestHandler_Handle_Errors(t *testing.T) {
	for err, status := range map[error]int{
		shops.ErrShopNotFound: http.StatusNotFound,
		shops.ErrAccessDenied: http.StatusForbidden,
		shops.ErrInternal:     http.StatusInternalServerError,
	} {
		rec := httptest.NewRecorder()
		NewHandler(&fakeService{err: err}, logger.NewNop()).Handle(rec, request())
		assert.Equal(t, status, rec.Code, err.Error())
	}
}
