package get_pickup_timeslots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	getPickupTimeslots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_pickup_timeslots"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeUseCase struct {
	got  *getPickupTimeslots.Request
	resp *getPickupTimeslots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getPickupTimeslots.Request) (*getPickupTimeslots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandler_Handle(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, loc)
	uc := &fakeUseCase{resp: &getPickupTimeslots.Response{Days: []domain.TimeslotsByDate{
		{Date: "2025-03-14", Timeslots: []*domain.Timeslot{
			{ID: 1, ShopID: 2, StartDatetime: start, EndDatetime: start.Add(3 * time.Hour), PickupAvailableQuota: 4, DeliveryAvailableQuota: 5},
		}},
	}}}
	h := NewHandler(uc, loc, logger.NewNop())

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(method, "/api/v1/timeslots/pickup?shop_id=2&is_available=true&start_date=2025-03-14&end_date=2025-03-16", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"date":"2025-03-14"`)
		assert.Contains(t, rec.Body.String(), `"pickup_available_quota":4`)

		require.NotNil(t, uc.got.ShopID)
		assert.Equal(t, int64(2), *uc.got.ShopID)
		assert.True(t, uc.got.IsAvailable)
		assert.True(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc).Equal(*uc.got.StartDate))
		assert.True(t, time.Date(2025, 3, 16, 0, 0, 0, 0, loc).Equal(*uc.got.EndDate))
	}
}

func TestHandler_Handle_NoFilters(t *testing.T) {
	uc := &fakeUseCase{resp: &getPickupTimeslots.Response{Days: []domain.TimeslotsByDate{}}}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/timeslots/pickup", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"timeslots":[]}`, rec.Body.String())
	assert.Nil(t, uc.got.ShopID)
	assert.False(t, uc.got.IsAvailable)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"bad shop id", "?shop_id=abc", nil, http.StatusBadRequest, "validation_error"},
		{"bad flag", "?is_available=maybe", nil, http.StatusBadRequest, "validation_error"},
		{"bad date", "?start_date=14.03.2025", nil, http.StatusBadRequest, "validation_error"},
		{"bad range", "", getPickupTimeslots.ErrInvalidDateRange, http.StatusBadRequest, "validation_error"},
		{"storage", "", getPickupTimeslots.ErrInternal, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err, resp: &getPickupTimeslots.Response{}}, time.UTC, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/timeslots/pickup"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
		})
	}
}
