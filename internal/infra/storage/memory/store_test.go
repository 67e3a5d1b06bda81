package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
)

func newSlot(partnerID int64, start time.Time, status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		PartnerID: partnerID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	}
}

func TestSlotRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Slots()
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)

	created, err := repo.InsertIfAbsent(ctx, newSlot(1, start, domain.SlotStatusDraft))
	require.NoError(t, err)
	assert.True(t, created)

	// тот же момент в другой зоне считается дубликатом
	amsterdam, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)
	created, err = repo.InsertIfAbsent(ctx, newSlot(1, start.In(amsterdam), domain.SlotStatusPublished))
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.InsertIfAbsent(ctx, newSlot(2, start, domain.SlotStatusDraft))
	require.NoError(t, err)
	assert.True(t, created)

	got, err := repo.GetByStartTime(ctx, 1, start)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusDraft, got.Status)
}

func TestSlotRepository_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Slots()
	sl := newSlot(1, time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC), domain.SlotStatusPublished)
	_, err := repo.InsertIfAbsent(ctx, sl)
	require.NoError(t, err)

	updated, err := repo.TransitionStatus(ctx, sl.ID, domain.SlotStatusPublished, domain.SlotStatusBooked)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStatusBooked, updated.Status)

	_, err = repo.TransitionStatus(ctx, sl.ID, domain.SlotStatusPublished, domain.SlotStatusBooked)
	assert.ErrorIs(t, err, slotRepo.ErrStatusMismatch)

	_, err = repo.GetByID(ctx, 2, sl.ID)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)
}

func TestSlotRepository_DeleteUnbooked(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Slots()
	base := time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)

	draft := newSlot(1, base, domain.SlotStatusDraft)
	published := newSlot(1, base.Add(time.Hour), domain.SlotStatusPublished)
	booked := newSlot(1, base.Add(2*time.Hour), domain.SlotStatusBooked)
	for _, sl := range []*domain.Slot{draft, published, booked} {
		_, err := repo.InsertIfAbsent(ctx, sl)
		require.NoError(t, err)
	}

	deleted, err := repo.DeleteUnbooked(ctx, 1, []int64{draft.ID, published.ID, booked.ID, 999})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{draft.ID, published.ID}, deleted)

	slots, err := repo.ListByRange(ctx, 1, base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, booked.ID, slots[0].ID)

	// строка удалена вместе с индексом, время можно занять заново
	created, err := repo.InsertIfAbsent(ctx, newSlot(1, base, domain.SlotStatusDraft))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestStore_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)
	errBoom := errors.New("boom")

	err := store.Do(ctx, func(txCtx context.Context) error {
		sl := newSlot(1, start, domain.SlotStatusPublished)
		if _, err := store.Slots().InsertIfAbsent(txCtx, sl); err != nil {
			return err
		}
		if _, err := store.Bookings().Create(txCtx, &domain.Booking{SlotID: sl.ID, Status: domain.BookingStatusPending}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = store.Slots().GetByStartTime(ctx, 1, start)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)
	_, err = store.Bookings().GetByID(ctx, 1)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestStore_DoRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)

	assert.Panics(t, func() {
		_ = store.Do(ctx, func(txCtx context.Context) error {
			if _, err := store.Slots().InsertIfAbsent(txCtx, newSlot(1, start, domain.SlotStatusPublished)); err != nil {
				return err
			}
			panic("boom")
		})
	})

	// мьютекс освобожден, вставка откатилась
	_, err := store.Slots().GetByStartTime(ctx, 1, start)
	assert.ErrorIs(t, err, slotRepo.ErrSlotNotFound)
}

func TestSlotRepository_DeleteDetachesBookings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)

	sl := newSlot(1, start, domain.SlotStatusPublished)
	_, err := store.Slots().InsertIfAbsent(ctx, sl)
	require.NoError(t, err)
	b, err := store.Bookings().Create(ctx, &domain.Booking{SlotID: sl.ID, PartnerID: 1, Status: domain.BookingStatusCancelled})
	require.NoError(t, err)

	deleted, err := store.Slots().DeleteUnbooked(ctx, 1, []int64{sl.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{sl.ID}, deleted)

	stored, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.SlotID)
	assert.Equal(t, domain.BookingStatusCancelled, stored.Status)
}

func TestBookingRepository_OneActivePerSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Bookings()

	first, err := repo.Create(ctx, &domain.Booking{SlotID: 10, Status: domain.BookingStatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Booking{SlotID: 10, Status: domain.BookingStatusPending})
	assert.ErrorIs(t, err, bookingRepo.ErrSlotAlreadyBooked)

	require.NoError(t, repo.Cancel(ctx, first.ID, time.Now()))
	assert.ErrorIs(t, repo.Cancel(ctx, first.ID, time.Now()), bookingRepo.ErrCannotCancel)

	_, err = repo.Create(ctx, &domain.Booking{SlotID: 10, Status: domain.BookingStatusPending})
	assert.NoError(t, err)
}

func TestCustomerRepository_UpsertByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Customers()

	first, err := repo.Upsert(ctx, &domain.Customer{Name: "Anna", Email: "Anna@Example.com "})
	require.NoError(t, err)
	second, err := repo.Upsert(ctx, &domain.Customer{Name: "Anna K.", Email: "anna@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Anna K.", second.Name)
	assert.Equal(t, "anna@example.com", second.Email)
}
