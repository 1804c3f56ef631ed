package domain

import "errors"

var (
	// ErrInvalidScheduleConfiguration shop hours or durations violate the schedule rules
	ErrInvalidScheduleConfiguration = errors.New("domain: invalid schedule configuration")

	// ErrInvalidStatusTransition order status change is not a forward move
	ErrInvalidStatusTransition = errors.New("domain: invalid status transition")
)
