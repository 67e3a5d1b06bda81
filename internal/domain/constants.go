package domain

import "time"

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultDailyCapacity       = 12
	DefaultTimezone            = "Europe/Amsterdam"
	DefaultRefundWindow        = 24 * time.Hour
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	MinParticipants        = 1
	MaxParticipants        = 3
	MaxSeriesDays          = 366
	MaxDeleteBatch         = 500
	MaxFeePercent          = 100
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// StartOfDay returns local midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DateIn reinterprets the calendar date of d (ignoring its zone) as midnight in loc
func DateIn(d time.Time, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
