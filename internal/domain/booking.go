package domain

import "time"

// BookingType represents which capacity of a timeslot a booking consumes
type BookingType string

const (
	BookingTypePickUp   BookingType = "pick_up"
	BookingTypeDelivery BookingType = "delivery"
)

// IsValid returns true for a known booking type
func (t BookingType) IsValid() bool {
	return t == BookingTypePickUp || t == BookingTypeDelivery
}

// Booking is a user's reservation of one kind of capacity in one timeslot.
// Bookings are immutable once created.
type Booking struct {
	ID          int64
	TimeslotID  int64
	UserID      int64
	AddressID   int64
	BookingType BookingType
	CreatedAt   time.Time
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// BookingDetails is a booking joined with its timeslot
type BookingDetails struct {
	Booking
	ShopID        int64
	StartDatetime time.Time
	EndDatetime   time.Time
}

// EarliestDeliveryStart returns the first instant a delivery may start
// for a pickup booking at a shop with the given turnaround
func EarliestDeliveryStart(pickupStart time.Time, washDuration time.Duration) time.Time {
	return pickupStart.Add(washDuration)
}
