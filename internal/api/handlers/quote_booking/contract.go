package quote_booking

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing/models"
)

type PricingService interface {
	Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
