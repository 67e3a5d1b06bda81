package apply_discount

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

var testNow = time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	store     *memory.Store
	publisher *recordingPublisher
}

func setup(t *testing.T) fixture {
	t.Helper()

	store := memory.NewStore()
	for _, id := range []int64{1, 2} {
		store.PutPartner(domain.Partner{
			ID:              id,
			Price1PaxCents:  4995,
			Price2PlusCents: 3995,
			FeePercent:      decimal.NewFromInt(20),
			Timezone:        "Europe/Amsterdam",
		})
	}

	codes := []domain.DiscountCode{
		{ID: 1, Code: "PCT10", Type: domain.DiscountTypePercent, Percent: 10, Active: true},
		{ID: 2, Code: "FIXED100", Type: domain.DiscountTypeFixed, AmountCents: 10000, Active: true},
		{ID: 3, Code: "SLEEPING", Type: domain.DiscountTypePercent, Percent: 10},
		{ID: 4, Code: "SOON", Type: domain.DiscountTypePercent, Percent: 10, Active: true, ValidFrom: ptr.Ptr(testNow.Add(time.Hour))},
		{ID: 5, Code: "OLD", Type: domain.DiscountTypePercent, Percent: 10, Active: true, ValidUntil: ptr.Ptr(testNow.Add(-time.Hour))},
		{ID: 6, Code: "USEDUP", Type: domain.DiscountTypePercent, Percent: 10, Active: true, MaxRedemptions: ptr.Ptr(1), RedeemedCount: 1},
		{ID: 7, Code: "OTHER", PartnerID: ptr.Ptr(int64(2)), Type: domain.DiscountTypePercent, Percent: 10, Active: true},
		{ID: 8, Code: "SUMMER", Type: domain.DiscountTypePercent, Percent: 10, Active: true},
		{ID: 9, Code: "SUMMER", PartnerID: ptr.Ptr(int64(1)), Type: domain.DiscountTypePercent, Percent: 50, Active: true},
	}
	for _, c := range codes {
		store.PutDiscountCode(c)
	}

	publisher := &recordingPublisher{}
	uc := NewUseCase(
		store.Bookings(),
		store.Partners(),
		store.Discounts(),
		store,
		publisher,
		metrics.Nop{},
		nopLogger{},
	).WithTimeProvider(fixedClock{now: testNow})

	return fixture{uc: uc, store: store, publisher: publisher}
}

func (f fixture) booking(t *testing.T, status domain.BookingStatus) int64 {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		SlotID:             1,
		PartnerID:          1,
		CustomerID:         1,
		ParticipantCount:   2,
		Status:             status,
		TotalAmountCents:   7990,
		DepositAmountCents: 1598,
		RestAmountCents:    6392,
	})
	require.NoError(t, err)
	return b.ID
}

func apply(f fixture, id int64, code *string) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{BookingID: id, Code: code})
}

func TestExecute_PercentWorkedExample(t *testing.T) {
	f := setup(t)
	id := f.booking(t, domain.BookingStatusPending)

	resp, err := apply(f, id, ptr.Ptr("pct10"))
	require.NoError(t, err)

	assert.Equal(t, "PCT10", resp.DiscountCode)
	assert.Equal(t, int64(799), resp.DiscountAmountCents)
	assert.Equal(t, int64(7191), resp.TotalAmountCents)
	assert.Equal(t, int64(1438), resp.DepositAmountCents)
	assert.Equal(t, int64(5753), resp.RestAmountCents)

	stored, err := f.store.Bookings().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), *stored.DiscountCodeID)
	assert.Equal(t, int64(7990), stored.BaseTotalCents())

	assert.Equal(t, []string{events.SubjectBookingRepriced}, f.publisher.subjects)
}

func TestExecute_ReapplyingIsIdempotent(t *testing.T) {
	f := setup(t)
	id := f.booking(t, domain.BookingStatusPending)

	first, err := apply(f, id, ptr.Ptr("PCT10"))
	require.NoError(t, err)
	second, err := apply(f, id, ptr.Ptr("PCT10"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ClearRestoresUndiscountedPricing(t *testing.T) {
	for _, code := range []string{"PCT10", "FIXED100", "SUMMER"} {
		t.Run(code, func(t *testing.T) {
			f := setup(t)
			id := f.booking(t, domain.BookingStatusPending)

			_, err := apply(f, id, ptr.Ptr(code))
			require.NoError(t, err)

			for _, blank := range []*string{nil, ptr.Ptr("  ")} {
				resp, err := apply(f, id, blank)
				require.NoError(t, err)
				assert.Equal(t, &Response{
					BookingID:          id,
					TotalAmountCents:   7990,
					DepositAmountCents: 1598,
					RestAmountCents:    6392,
				}, resp)
			}
		})
	}
}

func TestExecute_FixedDiscountIsCappedAtBaseTotal(t *testing.T) {
	f := setup(t)
	id := f.booking(t, domain.BookingStatusPending)

	resp, err := apply(f, id, ptr.Ptr("FIXED100"))
	require.NoError(t, err)

	assert.Equal(t, int64(7990), resp.DiscountAmountCents)
	assert.Equal(t, int64(0), resp.TotalAmountCents)
	assert.Equal(t, int64(0), resp.DepositAmountCents)
	assert.Equal(t, int64(0), resp.RestAmountCents)
}

func TestExecute_PartnerCodeWinsOverGlobal(t *testing.T) {
	f := setup(t)
	id := f.booking(t, domain.BookingStatusPending)

	resp, err := apply(f, id, ptr.Ptr("summer"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), *resp.DiscountCodeID)
	assert.Equal(t, int64(3995), resp.DiscountAmountCents)
}

func TestExecute_RejectReasons(t *testing.T) {
	tests := []struct {
		code   string
		reason domain.DiscountRejectReason
	}{
		{"NOPE", domain.RejectNotFound},
		{"SLEEPING", domain.RejectInactive},
		{"SOON", domain.RejectNotYetValid},
		{"OLD", domain.RejectExpired},
		{"USEDUP", domain.RejectExhausted},
		{"OTHER", domain.RejectWrongPartner},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			f := setup(t)
			id := f.booking(t, domain.BookingStatusPending)

			_, err := apply(f, id, ptr.Ptr("PCT10"))
			require.NoError(t, err)

			_, err = apply(f, id, ptr.Ptr(tt.code))
			require.ErrorIs(t, err, ErrInvalidCode)

			var rejectedErr *CodeRejectedError
			require.True(t, errors.As(err, &rejectedErr))
			assert.Equal(t, tt.reason, rejectedErr.Reason)

			// предыдущая скидка не тронута
			stored, err := f.store.Bookings().GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, int64(7191), stored.TotalAmountCents)
			assert.Equal(t, int64(1), *stored.DiscountCodeID)
		})
	}
}

func TestExecute_LockedAndMissingBookings(t *testing.T) {
	f := setup(t)

	confirmed := f.booking(t, domain.BookingStatusConfirmed)
	_, err := apply(f, confirmed, ptr.Ptr("PCT10"))
	assert.ErrorIs(t, err, ErrPricingLocked)

	_, err = apply(f, 404, ptr.Ptr("PCT10"))
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = apply(f, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
