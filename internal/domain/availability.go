package domain

import (
	"fmt"
	"time"
)

// BaselineMode selects how remaining daily capacity is derived
type BaselineMode string

const (
	// BaselineAll remaining = max(0, capacity - published) for every day
	BaselineAll BaselineMode = "all"
	// BaselineFuture as BaselineAll, but 0 for days strictly before today
	BaselineFuture BaselineMode = "future"
	// BaselineNone remaining = number of materialized drafts
	BaselineNone BaselineMode = "none"
)

// ParseBaselineMode validates a raw mode value. Empty input yields fallback.
func ParseBaselineMode(s string, fallback BaselineMode) (BaselineMode, error) {
	if s == "" {
		return fallback, nil
	}
	mode := BaselineMode(s)
	switch mode {
	case BaselineAll, BaselineFuture, BaselineNone:
		return mode, nil
	}
	return "", fmt.Errorf("unknown baseline mode %q", s)
}

// DayCounts aggregates slot statuses of one partner-day.
// Stored slots off the current template (left over after the template changed)
// are counted only in OffSchedule.
type DayCounts struct {
	Date        time.Time
	Draft       int // materialized and virtual drafts
	Published   int
	Booked      int
	Virtual     int // drafts without a row
	OffSchedule int
	Capacity    int
	Remaining   int
}

// MaterializedDrafts returns the number of DRAFT rows
func (c DayCounts) MaterializedDrafts() int {
	return c.Draft - c.Virtual
}

// RemainingFor computes the baseline remaining figure, never negative
func (c DayCounts) RemainingFor(mode BaselineMode, isPast bool) int {
	var remaining int
	switch mode {
	case BaselineNone:
		remaining = c.MaterializedDrafts()
	case BaselineFuture:
		if isPast {
			return 0
		}
		remaining = c.Capacity - c.Published
	default:
		remaining = c.Capacity - c.Published
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SlotView is one entry of a day's merged schedule
type SlotView struct {
	SlotID      *int64
	StartTime   time.Time
	EndTime     time.Time
	Status      SlotStatus
	Virtual     bool
	OffSchedule bool // stored slot that is not on the current template
}
