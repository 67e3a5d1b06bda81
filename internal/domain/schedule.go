package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// ScheduleTemplate is the canonical daily grid of possible slot start times.
// Times without a persisted slot are virtual DRAFT slots.
type ScheduleTemplate struct {
	Times               []types.TimeString
	SlotDurationMinutes int
}

// DefaultScheduleTemplate is an hourly grid 09:00–20:00 with one-hour sessions
func DefaultScheduleTemplate() ScheduleTemplate {
	times := make([]types.TimeString, 0, 12)
	for hour := 9; hour <= 20; hour++ {
		times = append(times, types.TimeString(fmt.Sprintf("%02d:00", hour)))
	}
	return ScheduleTemplate{
		Times:               times,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}

// NewScheduleTemplate validates, deduplicates and sorts the given start times
func NewScheduleTemplate(times []string, durationMinutes int) (ScheduleTemplate, error) {
	if durationMinutes < MinSlotDurationMinutes || durationMinutes > MaxSlotDurationMinutes {
		return ScheduleTemplate{}, fmt.Errorf("slot duration must be between %d and %d minutes",
			MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	if len(times) == 0 {
		return ScheduleTemplate{}, fmt.Errorf("schedule must contain at least one start time")
	}

	seen := make(map[types.TimeString]struct{}, len(times))
	result := make([]types.TimeString, 0, len(times))
	for _, raw := range times {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return ScheduleTemplate{}, err
		}
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		result = append(result, ts)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IsBefore(result[j]) })

	return ScheduleTemplate{Times: result, SlotDurationMinutes: durationMinutes}, nil
}

// Size returns the number of possible slots per day
func (t ScheduleTemplate) Size() int {
	return len(t.Times)
}

// Duration returns the slot length
func (t ScheduleTemplate) Duration() time.Duration {
	return time.Duration(t.SlotDurationMinutes) * time.Minute
}

// Contains returns true if the time of day is part of the grid
func (t ScheduleTemplate) Contains(ts types.TimeString) bool {
	for _, candidate := range t.Times {
		if candidate == ts {
			return true
		}
	}
	return false
}

// Matches returns true if start falls exactly on a grid time in loc
func (t ScheduleTemplate) Matches(start time.Time, loc *time.Location) bool {
	local := start.In(loc)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return false
	}
	return t.Contains(types.NewTimeString(local))
}

// StartsOn returns all grid start times of the given calendar date in loc
func (t ScheduleTemplate) StartsOn(date time.Time, loc *time.Location) []time.Time {
	starts := make([]time.Time, 0, len(t.Times))
	for _, ts := range t.Times {
		start, err := ts.On(date, loc)
		if err != nil {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}
