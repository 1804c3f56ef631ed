package domain

import (
	"sort"
	"time"
)

// TimeWindow is a bookable [Start, End) interval produced by the generator
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Timeslot is a window at a shop with independent pickup and delivery capacity
type Timeslot struct {
	ID                     int64
	ShopID                 int64
	StartDatetime          time.Time
	EndDatetime            time.Time
	PickupAvailableQuota   int
	DeliveryAvailableQuota int
}

// AvailableQuota returns the remaining capacity for the booking type
func (t *Timeslot) AvailableQuota(bt BookingType) int {
	if bt == BookingTypeDelivery {
		return t.DeliveryAvailableQuota
	}
	return t.PickupAvailableQuota
}

// IsAvailable returns true if at least one booking of the type still fits
func (t *Timeslot) IsAvailable(bt BookingType) bool {
	return t.AvailableQuota(bt) > 0
}

// TimeslotFilter selects timeslots for listing
type TimeslotFilter struct {
	ShopID       *int64
	StartFrom    *time.Time   // start_datetime >= StartFrom
	StartBefore  *time.Time   // start_datetime < StartBefore
	AvailableFor *BookingType // quota of this type >= 1
}

// TimeslotsByDate is one calendar day of a grouped listing
type TimeslotsByDate struct {
	Date      string
	Timeslots []*Timeslot
}

// GroupTimeslotsByDate groups timeslots by calendar date in loc.
// Days are ascending, slots inside a day are ordered by (start, shop, id).
func GroupTimeslotsByDate(slots []*Timeslot, loc *time.Location) []TimeslotsByDate {
	if loc == nil {
		loc = time.UTC
	}

	sorted := make([]*Timeslot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.StartDatetime.Equal(b.StartDatetime) {
			return a.StartDatetime.Before(b.StartDatetime)
		}
		if a.ShopID != b.ShopID {
			return a.ShopID < b.ShopID
		}
		return a.ID < b.ID
	})

	groups := make([]TimeslotsByDate, 0)
	for _, slot := range sorted {
		date := slot.StartDatetime.In(loc).Format(DateFormat)
		if n := len(groups); n > 0 && groups[n-1].Date == date {
			groups[n-1].Timeslots = append(groups[n-1].Timeslots, slot)
			continue
		}
		groups = append(groups, TimeslotsByDate{Date: date, Timeslots: []*Timeslot{slot}})
	}

	return groups
}
