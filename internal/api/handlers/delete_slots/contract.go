package delete_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
)

type SlotService interface {
	DeleteMany(ctx context.Context, partnerID int64, slotIDs []int64) (*models.DeleteSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
