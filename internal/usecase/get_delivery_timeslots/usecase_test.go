package get_delivery_timeslots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

var (
	testDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	testNow = testDay.Add(8 * time.Hour)
)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return testNow }

type fakeTimeslots struct {
	filter domain.TimeslotFilter
	slots  []*domain.Timeslot
}

// List намеренно игнорирует фильтр по времени, чтобы проверить защитную фильтрацию
func (f *fakeTimeslots) List(_ context.Context, filter domain.TimeslotFilter) ([]*domain.Timeslot, error) {
	f.filter = filter
	return f.slots, nil
}

type fakeBookings struct{}

func (fakeBookings) GetByID(_ context.Context, id int64) (*domain.BookingDetails, error) {
	switch id {
	case 100:
		return &domain.BookingDetails{
			Booking:       domain.Booking{ID: 100, UserID: 7, BookingType: domain.BookingTypePickUp},
			ShopID:        2,
			StartDatetime: testDay.Add(10 * time.Hour),
		}, nil
	case 101:
		return &domain.BookingDetails{
			Booking:       domain.Booking{ID: 101, UserID: 7, BookingType: domain.BookingTypeDelivery},
			ShopID:        2,
			StartDatetime: testDay.Add(34 * time.Hour),
		}, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeShops struct{}

func (fakeShops) GetByID(_ context.Context, id int64) (*domain.Shop, error) {
	return &domain.Shop{ID: id, WashDurationMinutes: 1440}, nil
}

func newUseCase(slots *fakeTimeslots) *UseCase {
	uc := NewUseCase(slots, fakeBookings{}, fakeShops{}, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{}
	return uc
}

func TestUseCase_Execute_NeverOffersSlotsBeforeWashEnds(t *testing.T) {
	slots := &fakeTimeslots{slots: []*domain.Timeslot{
		{ID: 1, ShopID: 2, StartDatetime: testDay.Add(16 * time.Hour)},
		{ID: 2, ShopID: 2, StartDatetime: testDay.Add(31 * time.Hour)},
		{ID: 3, ShopID: 2, StartDatetime: testDay.Add(34 * time.Hour)},
		{ID: 4, ShopID: 2, StartDatetime: testDay.Add(37 * time.Hour)},
		{ID: 5, ShopID: 9, StartDatetime: testDay.Add(37 * time.Hour)},
	}}

	resp, err := newUseCase(slots).Execute(context.Background(), &Request{UserID: 7, PickupBookingID: 100, IsAvailable: true})

	require.NoError(t, err)
	earliest := testDay.Add(34 * time.Hour)
	assert.Equal(t, earliest, resp.EarliestDeliveryTime)
	assert.Equal(t, earliest, *slots.filter.StartFrom)
	assert.Equal(t, int64(2), *slots.filter.ShopID)
	assert.Equal(t, domain.BookingTypeDelivery, *slots.filter.AvailableFor)

	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2025-03-15", resp.Days[0].Date)
	ids := make([]int64, 0)
	for _, slot := range resp.Days[0].Timeslots {
		assert.False(t, slot.StartDatetime.Before(earliest))
		ids = append(ids, slot.ID)
	}
	assert.Equal(t, []int64{3, 4}, ids)
}

func TestUseCase_Execute_PickupBookingChecks(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "missing pickup", req: &Request{UserID: 7}, wantErr: ErrInvalidInput},
		{name: "unknown booking", req: &Request{UserID: 7, PickupBookingID: 404}, wantErr: ErrPickupBookingNotFound},
		{name: "another user", req: &Request{UserID: 8, PickupBookingID: 100}, wantErr: ErrPickupBookingNotFound},
		{name: "not a pickup", req: &Request{UserID: 7, PickupBookingID: 101}, wantErr: ErrPickupBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(&fakeTimeslots{}).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
