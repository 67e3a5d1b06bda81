package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
)

// SlotRepository mirrors slot.Repository
type SlotRepository struct {
	s *Store
}

func (r *SlotRepository) InsertIfAbsent(ctx context.Context, sl *domain.Slot) (bool, error) {
	defer r.s.lock(ctx)()

	k := keyOf(sl.PartnerID, sl.StartTime)
	if _, exists := r.s.slotIndex[k]; exists {
		return false, nil
	}

	now := r.s.now()
	r.s.nextSlotID++
	sl.ID = r.s.nextSlotID
	sl.StartTime = sl.StartTime.UTC()
	sl.EndTime = sl.EndTime.UTC()
	sl.CreatedAt = now
	sl.UpdatedAt = now

	r.s.slots[sl.ID] = *sl
	r.s.slotIndex[k] = sl.ID
	return true, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, partnerID, id int64) (*domain.Slot, error) {
	defer r.s.lock(ctx)()

	sl, ok := r.s.slots[id]
	if !ok || sl.PartnerID != partnerID {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &sl, nil
}

func (r *SlotRepository) GetByStartTime(ctx context.Context, partnerID int64, start time.Time) (*domain.Slot, error) {
	defer r.s.lock(ctx)()

	id, ok := r.s.slotIndex[keyOf(partnerID, start)]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	sl := r.s.slots[id]
	return &sl, nil
}

func (r *SlotRepository) ListByRange(ctx context.Context, partnerID int64, from, to time.Time) ([]*domain.Slot, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Slot, 0)
	for _, sl := range r.s.slots {
		if sl.PartnerID != partnerID || sl.StartTime.Before(from) || !sl.StartTime.Before(to) {
			continue
		}
		sl := sl
		result = append(result, &sl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (r *SlotRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.SlotStatus) (*domain.Slot, error) {
	defer r.s.lock(ctx)()

	sl, ok := r.s.slots[id]
	if !ok || sl.Status != from {
		return nil, fmt.Errorf("%w: slot id=%d is not %s", slotRepo.ErrStatusMismatch, id, from)
	}
	sl.Status = to
	sl.UpdatedAt = r.s.now()
	r.s.slots[id] = sl
	return &sl, nil
}

func (r *SlotRepository) DeleteUnbooked(ctx context.Context, partnerID int64, ids []int64) ([]int64, error) {
	defer r.s.lock(ctx)()

	deleted := make([]int64, 0, len(ids))
	for _, id := range ids {
		sl, ok := r.s.slots[id]
		if !ok || sl.PartnerID != partnerID || sl.Status == domain.SlotStatusBooked {
			continue
		}
		delete(r.s.slots, id)
		delete(r.s.slotIndex, keyOf(sl.PartnerID, sl.StartTime))
		r.s.detachBookings(id)
		deleted = append(deleted, id)
	}
	return deleted, nil
}

// BookingRepository mirrors booking.Repository
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	for _, existing := range r.s.bookings {
		if existing.SlotID == b.SlotID && existing.IsActive() {
			return nil, fmt.Errorf("%w: slot id=%d", bookingRepo.ErrSlotAlreadyBooked, b.SlotID)
		}
	}

	now := r.s.now()
	r.s.nextBookingID++
	b.ID = r.s.nextBookingID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.bookings[b.ID] = *b
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) UpdatePricing(ctx context.Context, b *domain.Booking) error {
	defer r.s.lock(ctx)()

	stored, ok := r.s.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	stored.TotalAmountCents = b.TotalAmountCents
	stored.DepositAmountCents = b.DepositAmountCents
	stored.RestAmountCents = b.RestAmountCents
	stored.DiscountAmountCents = b.DiscountAmountCents
	stored.DiscountCodeID = b.DiscountCodeID
	stored.UpdatedAt = r.s.now()
	r.s.bookings[b.ID] = stored
	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	defer r.s.lock(ctx)()

	stored, ok := r.s.bookings[id]
	if !ok || !stored.CanBeCancelled() {
		return bookingRepo.ErrCannotCancel
	}
	at := cancelledAt.UTC()
	stored.Status = domain.BookingStatusCancelled
	stored.CancelledAt = &at
	stored.UpdatedAt = r.s.now()
	r.s.bookings[id] = stored
	return nil
}

// PartnerRepository mirrors partner.Repository
type PartnerRepository struct {
	s *Store
}

func (r *PartnerRepository) GetByID(ctx context.Context, id int64) (*domain.Partner, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.partners[id]
	if !ok {
		return nil, partnerRepo.ErrPartnerNotFound
	}
	return &p, nil
}

// CustomerRepository mirrors customer.Repository
type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) Upsert(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	defer r.s.lock(ctx)()

	email := strings.ToLower(strings.TrimSpace(c.Email))
	for id, existing := range r.s.customers {
		if existing.Email == email {
			existing.Name = c.Name
			r.s.customers[id] = existing
			return &existing, nil
		}
	}

	r.s.nextCustomerID++
	created := domain.Customer{
		ID:        r.s.nextCustomerID,
		Name:      c.Name,
		Email:     email,
		CreatedAt: r.s.now(),
	}
	r.s.customers[created.ID] = created
	return &created, nil
}

// DiscountRepository mirrors discount.Repository
type DiscountRepository struct {
	s *Store
}

func (r *DiscountRepository) FindByCode(ctx context.Context, code string) ([]*domain.DiscountCode, error) {
	defer r.s.lock(ctx)()

	key := domain.NormalizeCode(code)
	result := make([]*domain.DiscountCode, 0)
	for _, d := range r.s.discounts {
		if domain.NormalizeCode(d.Code) != key {
			continue
		}
		d := d
		result = append(result, &d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
