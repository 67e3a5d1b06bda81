package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
)

// validateSeries валидирует запрос массового создания слотов
func validateSeries(req *models.CreateSeriesRequest, template domain.ScheduleTemplate) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	if days := daysBetween(req.StartDate, req.EndDate) + 1; days > domain.MaxSeriesDays {
		return fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidInput, days, domain.MaxSeriesDays)
	}

	if len(req.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}
	for _, wd := range req.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidInput, wd)
		}
	}

	if len(req.Times) == 0 {
		return fmt.Errorf("%w: at least one time is required", ErrInvalidInput)
	}
	for _, ts := range req.Times {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		// День не может содержать слотов больше, чем шаблон расписания
		if !template.Contains(ts) {
			return fmt.Errorf("%w: time %s is not part of the daily schedule", ErrInvalidInput, ts)
		}
	}

	return nil
}

// validateDeleteIDs валидирует и убирает дубликаты из списка ID
func validateDeleteIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: slotIds must not be empty", ErrInvalidInput)
	}
	if len(ids) > domain.MaxDeleteBatch {
		return nil, fmt.Errorf("%w: at most %d slots per request", ErrInvalidInput, domain.MaxDeleteBatch)
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique, nil
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
