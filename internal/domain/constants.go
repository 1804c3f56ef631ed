package domain

// Timeslot generation defaults
const (
	DefaultHorizonDays = 7
	DefaultOpeningTime = "10:00"
	DefaultClosingTime = "19:00"
)

// Shop validation limits
const (
	MinWashDurationMinutes     = 24 * 60
	MinTimeslotDurationMinutes = 60
	MinUserLimitPerTimeslot    = 1
	MaxUserLimitPerTimeslot    = 1000
	MaxShopNameLength          = 200
)

// Time format constants
const (
	TimeFormat     = "15:04"      // HH:MM
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)
