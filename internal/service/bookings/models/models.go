package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID                  int64      `json:"id"`
	SlotID              int64      `json:"slotId"`
	PartnerID           int64      `json:"partnerId"`
	CustomerID          int64      `json:"customerId"`
	ParticipantCount    int        `json:"participantCount"`
	Status              string     `json:"status"`
	TotalAmountCents    int64      `json:"totalAmountCents"`
	DepositAmountCents  int64      `json:"depositAmountCents"`
	RestAmountCents     int64      `json:"restAmountCents"`
	DiscountAmountCents int64      `json:"discountAmountCents"`
	DiscountCodeID      *int64     `json:"discountCodeId,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменную модель в ответ
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                  b.ID,
		SlotID:              b.SlotID,
		PartnerID:           b.PartnerID,
		CustomerID:          b.CustomerID,
		ParticipantCount:    b.ParticipantCount,
		Status:              string(b.Status),
		TotalAmountCents:    b.TotalAmountCents,
		DepositAmountCents:  b.DepositAmountCents,
		RestAmountCents:     b.RestAmountCents,
		DiscountAmountCents: b.DiscountAmountCents,
		DiscountCodeID:      b.DiscountCodeID,
		CancelledAt:         b.CancelledAt,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
