package events

import (
	"time"
)

// Subjects публикуемых событий
const (
	SubjectBookingCreated   = "booking.created"
	SubjectBookingRepriced  = "booking.repriced"
	SubjectBookingCancelled = "booking.cancelled"
)

// BookingCreated событие о новом бронировании (для писем и инициации оплаты депозита)
type BookingCreated struct {
	BookingID          int64     `json:"bookingId"`
	PartnerID          int64     `json:"partnerId"`
	SlotID             int64     `json:"slotId"`
	CustomerID         int64     `json:"customerId"`
	CustomerEmail      string    `json:"customerEmail"`
	StartTime          time.Time `json:"startTime"`
	ParticipantCount   int       `json:"participantCount"`
	TotalAmountCents   int64     `json:"totalAmountCents"`
	DepositAmountCents int64     `json:"depositAmountCents"`
	CreatedAt          time.Time `json:"createdAt"`
}

// BookingRepriced событие о применении или снятии промокода
type BookingRepriced struct {
	BookingID           int64     `json:"bookingId"`
	DiscountCodeID      *int64    `json:"discountCodeId,omitempty"`
	DiscountAmountCents int64     `json:"discountAmountCents"`
	TotalAmountCents    int64     `json:"totalAmountCents"`
	DepositAmountCents  int64     `json:"depositAmountCents"`
	RestAmountCents     int64     `json:"restAmountCents"`
	RepricedAt          time.Time `json:"repricedAt"`
}

// BookingCancelled событие об отмене бронирования (для возврата депозита)
type BookingCancelled struct {
	BookingID          int64     `json:"bookingId"`
	SlotID             int64     `json:"slotId"`
	RefundEligible     bool      `json:"refundEligible"`
	DepositAmountCents int64     `json:"depositAmountCents"`
	CancelledAt        time.Time `json:"cancelledAt"`
}
