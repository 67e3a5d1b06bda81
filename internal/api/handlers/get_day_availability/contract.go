package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	DayDetail(ctx context.Context, partnerID int64, date time.Time) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
