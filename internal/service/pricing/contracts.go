package pricing

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// PartnerRepository интерфейс получения партнера
type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
