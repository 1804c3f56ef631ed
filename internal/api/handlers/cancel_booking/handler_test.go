package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/bookings"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct {
	err       error
	cancelled []int64
}

func (f *fakeService) Cancel(_ context.Context, bookingID, _ int64) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, bookingID)
	return nil
}

func request(id string) *http.Request {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id})
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, request("100"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{100}, svc.cancelled)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"bad id", "0", nil, http.StatusBadRequest},
		{"not found", "100", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "100", bookings.ErrAccessDenied, http.StatusForbidden},
		{"ordered", "100", bookings.ErrCannotCancel, http.StatusConflict},
		{"slot started", "100", bookings.ErrBookingStarted, http.StatusConflict},
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
