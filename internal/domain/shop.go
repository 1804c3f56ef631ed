package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// Shop is a laundry shop that accepts pickups and deliveries in timeslots
type Shop struct {
	ID                      int64
	UserID                  int64 // owner
	Name                    string
	OpeningTime             types.TimeString
	ClosingTime             types.TimeString
	WashDurationMinutes     int // minimum turnaround between pickup and delivery
	TimeslotDurationMinutes int
	MaxUserLimitPerTimeslot int // initial pickup and delivery quota of every timeslot
	Active                  bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// Validate checks the schedule rules. Violations wrap ErrInvalidScheduleConfiguration.
func (s *Shop) Validate() error {
	if strings.TrimSpace(s.Name) == "" || len(s.Name) > MaxShopNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidScheduleConfiguration, MaxShopNameLength)
	}

	opening, err := s.OpeningTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: opening_time: %v", ErrInvalidScheduleConfiguration, err)
	}
	closing, err := s.ClosingTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: closing_time: %v", ErrInvalidScheduleConfiguration, err)
	}
	if closing <= opening {
		return fmt.Errorf("%w: closing_time must be after opening_time", ErrInvalidScheduleConfiguration)
	}

	if s.WashDurationMinutes < MinWashDurationMinutes {
		return fmt.Errorf("%w: wash_duration must be at least %d minutes", ErrInvalidScheduleConfiguration, MinWashDurationMinutes)
	}
	if s.TimeslotDurationMinutes < MinTimeslotDurationMinutes {
		return fmt.Errorf("%w: time_slot_duration must be at least %d minutes", ErrInvalidScheduleConfiguration, MinTimeslotDurationMinutes)
	}
	if s.TimeslotDurationMinutes > closing-opening {
		return fmt.Errorf("%w: time_slot_duration does not fit into working hours", ErrInvalidScheduleConfiguration)
	}

	if s.MaxUserLimitPerTimeslot < MinUserLimitPerTimeslot || s.MaxUserLimitPerTimeslot > MaxUserLimitPerTimeslot {
		return fmt.Errorf("%w: max_user_limit_per_time_slot must be in [%d, %d]",
			ErrInvalidScheduleConfiguration, MinUserLimitPerTimeslot, MaxUserLimitPerTimeslot)
	}

	return nil
}

// ScheduleChanged reports whether any field that shapes the timeslot grid differs
func (s *Shop) ScheduleChanged(other *Shop) bool {
	return s.Active != other.Active ||
		s.OpeningTime != other.OpeningTime ||
		s.ClosingTime != other.ClosingTime ||
		s.WashDurationMinutes != other.WashDurationMinutes ||
		s.TimeslotDurationMinutes != other.TimeslotDurationMinutes ||
		s.MaxUserLimitPerTimeslot != other.MaxUserLimitPerTimeslot
}

// IsOwnedBy returns true if the user owns the shop
func (s *Shop) IsOwnedBy(userID int64) bool {
	return s.UserID == userID
}

// WashDuration returns the turnaround as a duration
func (s *Shop) WashDuration() time.Duration {
	return time.Duration(s.WashDurationMinutes) * time.Minute
}

// TimeslotDuration returns the slot length as a duration
func (s *Shop) TimeslotDuration() time.Duration {
	return time.Duration(s.TimeslotDurationMinutes) * time.Minute
}
