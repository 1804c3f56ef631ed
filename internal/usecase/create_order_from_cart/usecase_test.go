package create_order_from_cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/order"
	"github.com/m04kA/SMC-LaundryService/pkg/logger"
)

type fakeCartRepo struct {
	lines      map[int64][]domain.CartLine
	totalReset map[int64]bool
}

func (f *fakeCartRepo) ListForUpdate(_ context.Context, userID int64) ([]domain.CartLine, error) {
	return f.lines[userID], nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID int64) (int64, error) {
	n := int64(len(f.lines[userID]))
	delete(f.lines, userID)
	return n, nil
}

func (f *fakeCartRepo) ResetTotal(_ context.Context, userID int64) error {
	f.totalReset[userID] = true
	return nil
}

type fakeOrderRepo struct {
	orders  []*domain.Order
	ordered map[int64]bool
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.ordered[order.PickupBookingID] || f.ordered[order.DeliveryBookingID] {
		return nil, orderRepo.ErrBookingAlreadyOrdered
	}
	order.ID = int64(len(f.orders) + 1)
	f.orders = append(f.orders, order)
	f.ordered[order.PickupBookingID] = true
	f.ordered[order.DeliveryBookingID] = true
	return order, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.BookingDetails
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.BookingDetails, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

type fakeShopRepo struct {
	shop *domain.Shop
}

func (f *fakeShopRepo) GetByID(_ context.Context, _ int64) (*domain.Shop, error) {
	copied := *f.shop
	return &copied, nil
}

// snapshotTx откатывает корзину, если функция вернула ошибку
type snapshotTx struct {
	cart *fakeCartRepo
}

func (s *snapshotTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	saved := make(map[int64][]domain.CartLine, len(s.cart.lines))
	for k, v := range s.cart.lines {
		saved[k] = v
	}
	if err := fn(ctx); err != nil {
		s.cart.lines = saved
		return err
	}
	return nil
}

type fixture struct {
	cart   *fakeCartRepo
	orders *fakeOrderRepo
	uc     *UseCase
}

var pickupStart = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	cart := &fakeCartRepo{
		lines: map[int64][]domain.CartLine{
			7: {
				{ID: 1, UserID: 7, ItemID: 100, WashCategoryID: 1, Quantity: 2, ItemPrice: decimal.NewFromInt(10), WashCategoryExtra: decimal.RequireFromString("0.5")},
				{ID: 2, UserID: 7, ItemID: 101, WashCategoryID: 2, Quantity: 1, ItemPrice: decimal.NewFromInt(5), WashCategoryExtra: decimal.NewFromInt(5)},
			},
		},
		totalReset: map[int64]bool{},
	}
	orders := &fakeOrderRepo{ordered: map[int64]bool{}}
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.BookingDetails{
		1: {Booking: domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypePickUp}, ShopID: 1, StartDatetime: pickupStart},
		2: {Booking: domain.Booking{ID: 2, UserID: 7, BookingType: domain.BookingTypeDelivery}, ShopID: 1, StartDatetime: pickupStart.Add(24 * time.Hour)},
		3: {Booking: domain.Booking{ID: 3, UserID: 7, BookingType: domain.BookingTypeDelivery}, ShopID: 1, StartDatetime: pickupStart.Add(3 * time.Hour)},
		4: {Booking: domain.Booking{ID: 4, UserID: 7, BookingType: domain.BookingTypeDelivery}, ShopID: 2, StartDatetime: pickupStart.Add(48 * time.Hour)},
		5: {Booking: domain.Booking{ID: 5, UserID: 8, BookingType: domain.BookingTypeDelivery}, ShopID: 1, StartDatetime: pickupStart.Add(24 * time.Hour)},
		6: {Booking: domain.Booking{ID: 6, UserID: 7, BookingType: domain.BookingTypePickUp}, ShopID: 1, StartDatetime: pickupStart.Add(24 * time.Hour)},
	}}
	shops := &fakeShopRepo{shop: &domain.Shop{ID: 1, WashDurationMinutes: 1440, TimeslotDurationMinutes: 180}}

	return &fixture{
		cart:   cart,
		orders: orders,
		uc:     NewUseCase(cart, orders, bookings, shops, &snapshotTx{cart: cart}, logger.NewNop()),
	}
}

func TestUseCase_Execute_SnapshotsCartIntoOrder(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 2})

	require.NoError(t, err)
	order := resp.Order
	assert.Equal(t, domain.OrderStatusPaymentPending, order.Status)
	assert.True(t, decimal.NewFromInt(31).Equal(order.TotalPrice), "total=%s", order.TotalPrice)
	require.Len(t, order.Details, 2)
	assert.True(t, decimal.NewFromInt(21).Equal(order.Details[0].SubtotalPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(order.Details[1].SubtotalPrice))

	assert.Empty(t, f.cart.lines[7])
	assert.True(t, f.cart.totalReset[7])
}

func TestUseCase_Execute_EmptyCart(t *testing.T) {
	f := newFixture()
	f.cart.lines = map[int64][]domain.CartLine{}

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 2})

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Empty(t, f.orders.orders)
}

func TestUseCase_Execute_BookingsAlreadyOrdered(t *testing.T) {
	f := newFixture()
	f.orders.ordered[1] = true

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 2})

	assert.ErrorIs(t, err, ErrBookingAlreadyOrdered)
	assert.Len(t, f.cart.lines[7], 2)
	assert.False(t, f.cart.totalReset[7])
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"missing delivery", Request{UserID: 7, PickupBookingID: 1}, ErrInvalidInput},
		{"same booking twice", Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 1}, ErrInvalidInput},
		{"unknown pickup", Request{UserID: 7, PickupBookingID: 99, DeliveryBookingID: 2}, ErrBookingNotFound},
		{"pickup is a delivery", Request{UserID: 7, PickupBookingID: 2, DeliveryBookingID: 3}, ErrBookingNotFound},
		{"delivery is a pickup", Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 6}, ErrBookingNotFound},
		{"delivery of another user", Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 5}, ErrBookingNotFound},
		{"delivery before wash completes", Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 3}, ErrBookingsMismatch},
		{"delivery at another shop", Request{UserID: 7, PickupBookingID: 1, DeliveryBookingID: 4}, ErrBookingsMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.orders.orders)
			assert.Len(t, f.cart.lines[7], 2)
		})
	}
}
