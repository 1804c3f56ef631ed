package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShop() *Shop {
	return &Shop{
		ID:                      1,
		UserID:                  7,
		Name:                    "Fresh Folds",
		OpeningTime:             "10:00",
		ClosingTime:             "19:00",
		WashDurationMinutes:     1440,
		TimeslotDurationMinutes: 180,
		MaxUserLimitPerTimeslot: 10,
		Active:                  true,
	}
}

func TestShop_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Shop)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Shop) {}},
		{name: "closing equals opening", mutate: func(s *Shop) { s.ClosingTime = "10:00" }, wantErr: true},
		{name: "closing before opening", mutate: func(s *Shop) { s.ClosingTime = "09:00" }, wantErr: true},
		{name: "wash duration under a day", mutate: func(s *Shop) { s.WashDurationMinutes = 600 }, wantErr: true},
		{name: "slot under an hour", mutate: func(s *Shop) { s.TimeslotDurationMinutes = 30 }, wantErr: true},
		{name: "slot longer than working hours", mutate: func(s *Shop) { s.TimeslotDurationMinutes = 600 }, wantErr: true},
		{name: "zero user limit", mutate: func(s *Shop) { s.MaxUserLimitPerTimeslot = 0 }, wantErr: true},
		{name: "bad opening format", mutate: func(s *Shop) { s.OpeningTime = "10am" }, wantErr: true},
		{name: "empty name", mutate: func(s *Shop) { s.Name = "  " }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validShop()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScheduleConfiguration)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShop_ScheduleChanged(t *testing.T) {
	before := validShop()

	same := validShop()
	same.Name = "Renamed"
	assert.False(t, before.ScheduleChanged(same))

	closing := validShop()
	closing.ClosingTime = "20:00"
	assert.True(t, before.ScheduleChanged(closing))

	inactive := validShop()
	inactive.Active = false
	assert.True(t, before.ScheduleChanged(inactive))

	limit := validShop()
	limit.MaxUserLimitPerTimeslot = 5
	assert.True(t, before.ScheduleChanged(limit))
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusPaymentPending.CanTransitionTo(OrderStatusPlaced))
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusPicked))
	assert.True(t, OrderStatusPicked.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusDelivered))

	assert.False(t, OrderStatusPlaced.CanTransitionTo(OrderStatusPlaced))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPicked))
	assert.False(t, OrderStatusPicked.CanTransitionTo(OrderStatusPaymentPending))
	assert.False(t, OrderStatus("initiated").CanTransitionTo(OrderStatusPlaced))
	assert.True(t, OrderStatusDelivered.IsTerminal())
}

func TestPreviousStatuses(t *testing.T) {
	assert.Equal(t, []OrderStatus{OrderStatusPaymentPending, OrderStatusPlaced}, PreviousStatuses(OrderStatusPicked))
	assert.Empty(t, PreviousStatuses(OrderStatusPaymentPending))
	assert.Nil(t, PreviousStatuses("unknown"))
}

func TestOrderTotal(t *testing.T) {
	lines := []CartLine{
		{ItemID: 1, WashCategoryID: 1, Quantity: 2, ItemPrice: decimal.NewFromInt(10), WashCategoryExtra: decimal.NewFromInt(3)},
		{ItemID: 2, WashCategoryID: 2, Quantity: 1, ItemPrice: decimal.NewFromInt(5), WashCategoryExtra: decimal.Zero},
	}

	details := make([]OrderDetail, 0, len(lines))
	for _, l := range lines {
		details = append(details, l.ToOrderDetail())
	}

	assert.True(t, details[0].SubtotalPrice.Equal(decimal.NewFromInt(26)))
	assert.True(t, TotalOf(details).Equal(decimal.NewFromInt(31)))
}

func TestGroupTimeslotsByDate(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2025, 3, d, h, 0, 0, 0, time.UTC) }
	slots := []*Timeslot{
		{ID: 3, ShopID: 1, StartDatetime: day(15, 10)},
		{ID: 2, ShopID: 1, StartDatetime: day(14, 13)},
		{ID: 1, ShopID: 1, StartDatetime: day(14, 10)},
	}

	groups := GroupTimeslotsByDate(slots, time.UTC)

	require.Len(t, groups, 2)
	assert.Equal(t, "2025-03-14", groups[0].Date)
	assert.Equal(t, int64(1), groups[0].Timeslots[0].ID)
	assert.Equal(t, int64(2), groups[0].Timeslots[1].ID)
	assert.Equal(t, "2025-03-15", groups[1].Date)
	assert.Empty(t, GroupTimeslotsByDate(nil, nil))
}

func TestTimeslot_AvailableQuota(t *testing.T) {
	slot := &Timeslot{PickupAvailableQuota: 0, DeliveryAvailableQuota: 4}

	assert.False(t, slot.IsAvailable(BookingTypePickUp))
	assert.True(t, slot.IsAvailable(BookingTypeDelivery))
	assert.Equal(t, 4, slot.AvailableQuota(BookingTypeDelivery))
}
