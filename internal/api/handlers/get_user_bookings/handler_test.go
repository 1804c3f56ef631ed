package get_user_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct {
	got *models.GetUserBookingsRequest
	err error
}

func (f *fakeService) GetUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, UserID: req.UserID}}}, nil
}

func request(query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+query, nil)
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request("?booking_type=delivery"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.BookingType)
	assert.Equal(t, "delivery", *svc.got.BookingType)
	assert.Equal(t, int64(7), svc.got.UserID)

	var resp models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Bookings, 1)
}

func TestHandler_Handle_NoFilter(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request(""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.BookingType)
}

func TestHandler_Handle_InvalidType(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: bookings.ErrInvalidInput}, logger.NewNop()).Handle(rec, request("?booking_type=express"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
