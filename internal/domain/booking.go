package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a reservation of one slot. All amounts are integer cents.
//
// Invariants: Total = Deposit + Rest, Total + Discount = base total for ParticipantCount.
type Booking struct {
	ID                  int64
	SlotID              int64
	PartnerID           int64
	CustomerID          int64
	ParticipantCount    int
	Status              BookingStatus
	TotalAmountCents    int64
	DepositAmountCents  int64
	RestAmountCents     int64
	DiscountAmountCents int64
	DiscountCodeID      *int64
	CancelledAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BaseTotalCents re-derives the undiscounted total
func (b *Booking) BaseTotalCents() int64 {
	return b.TotalAmountCents + b.DiscountAmountCents
}

// IsActive returns true while the booking holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCancelled
}

// CanBeCancelled returns true if the booking is not cancelled yet
func (b *Booking) CanBeCancelled() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// IsRepriceable returns true while the deposit has not been paid
func (b *Booking) IsRepriceable() bool {
	return b.Status == BookingStatusPending
}

// HasDiscount returns true if a discount code is applied
func (b *Booking) HasDiscount() bool {
	return b.DiscountCodeID != nil
}

// Customer references the person who made a booking
type Customer struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
