package apply_discount

import (
	"context"

	applyDiscount "github.com/m04kA/SMC-SlotBookingService/internal/usecase/apply_discount"
)

type ApplyDiscountUseCase interface {
	Execute(ctx context.Context, req *applyDiscount.Request) (*applyDiscount.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
