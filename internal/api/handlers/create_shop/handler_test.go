package create_shop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/handlers"
	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops"
	"github.com/m04kA/SMC-LaundryService/internal/service/shops/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct {
	got *models.CreateShopRequest
	err error
}

func (f *fakeService) Create(_ context.Context, req *models.CreateShopRequest) (*models.ShopResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ShopResponse{ID: 1, UserID: req.UserID, Name: req.Name, OpeningTime: "10:00", ClosingTime: "19:00", Active: true}, nil
}

const body = `{"name": "Fresh Folds", "wash_duration_minutes": 1440, "time_slot_duration_minutes": 180, "max_user_limit_per_time_slot": 10}`

func request(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/shops", strings.NewReader(body))
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request(body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), svc.got.UserID)
	assert.Equal(t, 180, svc.got.TimeslotDurationMinutes)

	var resp models.ShopResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Fresh Folds", resp.Name)
}

func TestHandler_Handle_InvalidSchedule(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: shops.ErrInvalidScheduleConfiguration}, logger.NewNop()).Handle(rec, request(body))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeInvalidScheduleConfiguration, resp.Code)
}

func TestHandler_Handle_UnknownField(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request(`{"name": "x", "owner": 8}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got)
}
