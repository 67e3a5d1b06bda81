package get_month_availability

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	MonthCounts(ctx context.Context, req *models.MonthRequest) (*models.MonthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
