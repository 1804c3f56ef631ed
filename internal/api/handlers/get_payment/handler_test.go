package get_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments"
	"github.com/m04kA/SMC-LaundryService/internal/service/payments/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) GetByOrderID(_ context.Context, orderID, _ int64) (*models.PaymentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentResponse{ID: 1, OrderID: orderID, Status: "success"}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ok", nil, http.StatusOK},
		{"order not found", payments.ErrOrderNotFound, http.StatusNotFound},
		{"no payment", payments.ErrPaymentNotFound, http.StatusNotFound},
		{"internal", payments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/orders/50/payments", nil)
			r = mux.SetURLVars(r, map[string]string{"orderId": "50"})
			r = r.WithContext(middleware.WithUserID(r.Context(), 7))
			rec := httptest.NewRecorder()

			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
