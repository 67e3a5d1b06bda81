package cancel_booking

import (
	"context"

	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
)

// CancelBookingUseCase отменяет бронирование и освобождает слот
type CancelBookingUseCase interface {
	Execute(ctx context.Context, bookingID int64) (*cancelBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
