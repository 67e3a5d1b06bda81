package publish_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
)

type SlotService interface {
	Publish(ctx context.Context, partnerID int64, startTime time.Time) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
