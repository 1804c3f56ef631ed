package book_timeslot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	addressRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/address"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	shopRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/shop"
	timeslotRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/timeslot"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
	"github.com/m04kA/SMC-LaundryService/pkg/ptr"
)

var testNow = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTimeslots struct {
	slots      map[int64]*domain.Timeslot
	reserveErr error
}

func (f *fakeTimeslots) SetLockTimeout(_ context.Context, _ time.Duration) error { return nil }

func (f *fakeTimeslots) GetByID(_ context.Context, id int64) (*domain.Timeslot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrTimeslotNotFound
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeTimeslots) TryReserve(_ context.Context, id int64, bt domain.BookingType) (int, error) {
	if f.reserveErr != nil {
		return 0, f.reserveErr
	}
	slot, ok := f.slots[id]
	if !ok {
		return 0, timeslotRepo.ErrTimeslotNotFound
	}
	quota := &slot.PickupAvailableQuota
	if bt == domain.BookingTypeDelivery {
		quota = &slot.DeliveryAvailableQuota
	}
	if *quota <= 0 {
		return 0, timeslotRepo.ErrQuotaExhausted
	}
	*quota--
	return *quota, nil
}

type fakeShops struct{ shops map[int64]*domain.Shop }

func (f *fakeShops) GetForShare(_ context.Context, id int64) (*domain.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, shopRepo.ErrShopNotFound
	}
	return shop, nil
}

type fakeBookings struct {
	bookings        []*domain.BookingDetails
	slots           *fakeTimeslots
	duplicateOnSave bool
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.duplicateOnSave {
		return nil, bookingRepo.ErrDuplicateBooking
	}
	for _, existing := range f.bookings {
		if existing.TimeslotID == b.TimeslotID && existing.UserID == b.UserID {
			return nil, bookingRepo.ErrDuplicateBooking
		}
	}
	b.ID = int64(len(f.bookings) + 100)
	b.CreatedAt = testNow
	slot := f.slots.slots[b.TimeslotID]
	f.bookings = append(f.bookings, &domain.BookingDetails{
		Booking:       *b,
		ShopID:        slot.ShopID,
		StartDatetime: slot.StartDatetime,
		EndDatetime:   slot.EndDatetime,
	})
	return b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.BookingDetails, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) ExistsForUserAndTimeslot(_ context.Context, userID, timeslotID int64) (bool, error) {
	for _, b := range f.bookings {
		if b.UserID == userID && b.TimeslotID == timeslotID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAddresses struct{}

func (fakeAddresses) GetByID(_ context.Context, id int64) (*domain.Address, error) {
	if id <= 0 || id > 2000 {
		return nil, addressRepo.ErrAddressNotFound
	}
	// Адрес N принадлежит пользователю N-1000, адрес 3 - пользователю 7
	if id == 3 {
		return &domain.Address{ID: 3, UserID: 7}, nil
	}
	return &domain.Address{ID: id, UserID: id - 1000}, nil
}

// serialTx выполняет транзакции по одной и откатывает квоты и бронирования при ошибке
type serialTx struct {
	mu       sync.Mutex
	slots    *fakeTimeslots
	bookings *fakeBookings
}

func (s *serialTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[int64]domain.Timeslot, len(s.slots.slots))
	for id, slot := range s.slots.slots {
		snapshot[id] = *slot
	}
	bookingsLen := len(s.bookings.bookings)

	if err := fn(ctx); err != nil {
		for id, slot := range snapshot {
			restored := slot
			s.slots.slots[id] = &restored
		}
		s.bookings.bookings = s.bookings.bookings[:bookingsLen]
		return err
	}
	return nil
}

type outcomes struct {
	mu   sync.Mutex
	seen map[string]int
}

func (o *outcomes) RecordBooking(_ string, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen[outcome]++
}

type fixture struct {
	slots    *fakeTimeslots
	shops    *fakeShops
	bookings *fakeBookings
	outcomes *outcomes
	uc       *UseCase
}

func slotAt(id, shopID int64, start time.Time, quota int) *domain.Timeslot {
	return &domain.Timeslot{
		ID:                     id,
		ShopID:                 shopID,
		StartDatetime:          start,
		EndDatetime:            start.Add(3 * time.Hour),
		PickupAvailableQuota:   quota,
		DeliveryAvailableQuota: quota,
	}
}

func newFixture() *fixture {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	slots := &fakeTimeslots{slots: map[int64]*domain.Timeslot{
		11: slotAt(11, 2, day.Add(10*time.Hour), 10),
		12: slotAt(12, 2, day.Add(16*time.Hour), 10),
		13: slotAt(13, 2, day.Add(13*time.Hour), 0),
		21: slotAt(21, 2, day.Add(34*time.Hour), 10), // завтра 10:00, ровно через сутки после 11
		31: slotAt(31, 3, day.Add(58*time.Hour), 10),
		40: slotAt(40, 4, day.Add(10*time.Hour), 10),
		50: slotAt(50, 2, day.Add(7*time.Hour), 10), // уже начался
	}}
	shops := &fakeShops{shops: map[int64]*domain.Shop{
		2: {ID: 2, WashDurationMinutes: 1440, MaxUserLimitPerTimeslot: 10, Active: true},
		3: {ID: 3, WashDurationMinutes: 1440, MaxUserLimitPerTimeslot: 10, Active: true},
		4: {ID: 4, WashDurationMinutes: 1440, MaxUserLimitPerTimeslot: 10, Active: false},
	}}
	bookings := &fakeBookings{slots: slots}
	rec := &outcomes{seen: map[string]int{}}

	uc := NewUseCase(slots, shops, bookings, fakeAddresses{}, &serialTx{slots: slots, bookings: bookings},
		rec, time.Second, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}

	return &fixture{slots: slots, shops: shops, bookings: bookings, outcomes: rec, uc: uc}
}

func pickupRequest(timeslotID int64) *Request {
	return &Request{UserID: 7, TimeslotID: timeslotID, BookingType: domain.BookingTypePickUp, AddressID: 3}
}

func TestUseCase_Execute_Pickup(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), pickupRequest(11))

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ShopID)
	assert.Equal(t, 9, resp.RemainingQuota)
	assert.Equal(t, 9, f.slots.slots[11].PickupAvailableQuota)
	assert.Equal(t, 10, f.slots.slots[11].DeliveryAvailableQuota)
	assert.Equal(t, 1, f.outcomes.seen[outcomeBooked])
}

func TestUseCase_Execute_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, pickupRequest(11))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, pickupRequest(11))
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	assert.Equal(t, 9, f.slots.slots[11].PickupAvailableQuota)
	assert.Len(t, f.bookings.bookings, 1)
	assert.Equal(t, 1, f.outcomes.seen[outcomeDuplicate])
}

func TestUseCase_Execute_QuotaExhausted(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), pickupRequest(13))

	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 0, f.slots.slots[13].PickupAvailableQuota)
	assert.Empty(t, f.bookings.bookings)
}

func TestUseCase_Execute_LockTimeoutIsContested(t *testing.T) {
	f := newFixture()
	f.slots.reserveErr = fmt.Errorf("%w: TryReserve - timeslot id=11: canceling statement due to lock timeout", timeslotRepo.ErrLockTimeout)

	_, err := f.uc.Execute(context.Background(), pickupRequest(11))

	assert.ErrorIs(t, err, ErrQuotaContested)
	assert.NotErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 1, f.outcomes.seen[outcomeContested])
}

func TestUseCase_Execute_InsertRaceRollsBackQuota(t *testing.T) {
	f := newFixture()
	f.bookings.duplicateOnSave = true

	_, err := f.uc.Execute(context.Background(), pickupRequest(11))

	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Equal(t, 10, f.slots.slots[11].PickupAvailableQuota)
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown booking type",
			req:     &Request{UserID: 7, TimeslotID: 11, BookingType: "PICKUP", AddressID: 3},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "address of another user",
			req:     &Request{UserID: 8, TimeslotID: 11, BookingType: domain.BookingTypePickUp, AddressID: 3},
			wantErr: ErrAddressNotFound,
		},
		{
			name:    "unknown timeslot",
			req:     pickupRequest(999),
			wantErr: ErrTimeslotNotFound,
		},
		{
			name:    "inactive shop",
			req:     pickupRequest(40),
			wantErr: ErrShopInactive,
		},
		{
			name:    "timeslot already started",
			req:     pickupRequest(50),
			wantErr: ErrTimeslotInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.bookings)
			assert.Equal(t, 1, f.outcomes.seen[outcomeRejected])
		})
	}
}

func TestUseCase_Execute_Delivery(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		addressID  int64
		timeslotID int64
		pickupID   *int64
		wantErr    error
	}{
		{name: "exactly wash duration after pickup", userID: 7, addressID: 3, timeslotID: 21, pickupID: ptr.Ptr(int64(100))},
		{name: "pickup booking is required", userID: 7, addressID: 3, timeslotID: 21, wantErr: ErrInvalidInput},
		{name: "before wash duration elapsed", userID: 7, addressID: 3, timeslotID: 12, pickupID: ptr.Ptr(int64(100)), wantErr: ErrInvalidDeliveryTimeslot},
		{name: "another shop", userID: 7, addressID: 3, timeslotID: 31, pickupID: ptr.Ptr(int64(100)), wantErr: ErrInvalidDeliveryTimeslot},
		{name: "pickup of another user", userID: 8, addressID: 1008, timeslotID: 21, pickupID: ptr.Ptr(int64(100)), wantErr: ErrPickupBookingNotFound},
		{name: "unknown pickup", userID: 7, addressID: 3, timeslotID: 21, pickupID: ptr.Ptr(int64(555)), wantErr: ErrPickupBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			pickup, err := f.uc.Execute(ctx, pickupRequest(11))
			require.NoError(t, err)
			require.Equal(t, int64(100), pickup.ID)

			resp, err := f.uc.Execute(ctx, &Request{
				UserID:          tt.userID,
				TimeslotID:      tt.timeslotID,
				BookingType:     domain.BookingTypeDelivery,
				AddressID:       tt.addressID,
				PickupBookingID: tt.pickupID,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 10, f.slots.slots[tt.timeslotID].DeliveryAvailableQuota)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingTypeDelivery, resp.BookingType)
			assert.Equal(t, 9, f.slots.slots[tt.timeslotID].DeliveryAvailableQuota)
		})
	}
}

func TestUseCase_Execute_ConcurrentReservationsNeverOversell(t *testing.T) {
	f := newFixture()
	f.slots.slots[11].PickupAvailableQuota = 3

	const users = 10
	var wg sync.WaitGroup
	errs := make([]error, users)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := int64(i + 1)
			_, errs[i] = f.uc.Execute(context.Background(), &Request{
				UserID:      userID,
				TimeslotID:  11,
				BookingType: domain.BookingTypePickUp,
				AddressID:   1000 + userID,
			})
		}(i)
	}
	wg.Wait()

	var booked, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case assert.ErrorIs(t, err, ErrQuotaExhausted):
			exhausted++
		}
	}

	assert.Equal(t, 3, booked)
	assert.Equal(t, users-3, exhausted)
	assert.Equal(t, 0, f.slots.slots[11].PickupAvailableQuota)
	assert.Len(t, f.bookings.bookings, 3)
}
