package create_series

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
)

type SlotService interface {
	CreateSeries(ctx context.Context, req *models.CreateSeriesRequest) (*models.CreateSeriesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
