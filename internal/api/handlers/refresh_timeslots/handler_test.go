package refresh_timeslots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/service/timeslots"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeService struct {
	result *timeslots.RefreshResult
	err    error
}

func (f *fakeService) RefreshAll(context.Context) (*timeslots.RefreshResult, error) {
	return f.result, f.err
}

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(&fakeService{result: &timeslots.RefreshResult{Shops: 3, Generated: 21, Failed: []int64{4}}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/timeslots/refresh", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"shops":3,"generated":21,"failed_shop_ids":[4]}`, rec.Body.String())
}

func TestHandler_Handle_Error(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("db down")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/timeslots/refresh", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
