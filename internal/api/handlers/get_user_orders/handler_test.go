package get_user_orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/api/middleware"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders"
	"github.com/m04kA/SMC-LaundryService/internal/service/orders/models"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) ListByUser(_ context.Context, userID int64) (*models.OrderListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderListResponse{Orders: []models.OrderResponse{{ID: 50, UserID: userID}}}, nil
}

func request() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	return r.WithContext(middleware.WithUserID(r.Context(), 7))
}

func TestHandler_Handle(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(rec, request())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, int64(7), resp.Orders[0].UserID)
}

func TestHandler_Handle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: orders.ErrInternal}, logger.NewNop()).Handle(rec, request())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
