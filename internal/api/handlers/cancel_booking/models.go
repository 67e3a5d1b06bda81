package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID      int64  `json:"bookingId"`
	Status         string `json:"status"`
	RefundEligible bool   `json:"refundEligible"`
	CancelledAt    string `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:      resp.BookingID,
		Status:         resp.Status,
		RefundEligible: resp.RefundEligible,
		CancelledAt:    resp.CancelledAt.Format(time.RFC3339),
	}
}
