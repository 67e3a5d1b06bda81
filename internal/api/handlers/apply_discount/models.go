package apply_discount

import (
	applyDiscount "github.com/m04kA/SMC-SlotBookingService/internal/usecase/apply_discount"
)

// ApplyDiscountRequest HTTP request model. code = null или "" снимает скидку
type ApplyDiscountRequest struct {
	Code *string `json:"code"`
}

// PricingResponse HTTP response model
type PricingResponse struct {
	BookingID           int64   `json:"bookingId"`
	DiscountCode        *string `json:"discountCode,omitempty"`
	DiscountAmountCents int64   `json:"discountAmountCents"`
	TotalAmountCents    int64   `json:"totalAmountCents"`
	DepositAmountCents  int64   `json:"depositAmountCents"`
	RestAmountCents     int64   `json:"restAmountCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyDiscount.Response) *PricingResponse {
	result := &PricingResponse{
		BookingID:           resp.BookingID,
		DiscountAmountCents: resp.DiscountAmountCents,
		TotalAmountCents:    resp.TotalAmountCents,
		DepositAmountCents:  resp.DepositAmountCents,
		RestAmountCents:     resp.RestAmountCents,
	}
	if resp.DiscountCode != "" {
		code := resp.DiscountCode
		result.DiscountCode = &code
	}
	return result
}
