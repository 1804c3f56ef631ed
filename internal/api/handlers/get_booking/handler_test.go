package get_booking

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
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) GetByID(_ context.Context, bookingID, userID int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: bookingID, UserID: userID, BookingType: "pick_up"}, nil
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, request("100"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"not found", "100", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "100", bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "100", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, request(tt.id))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
