package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

func TestSlotStatus_Next(t *testing.T) {
	tests := []struct {
		name    string
		from    SlotStatus
		t       SlotTransition
		want    SlotStatus
		wantErr error
	}{
		{"publish draft", SlotStatusDraft, TransitionPublish, SlotStatusPublished, nil},
		{"unpublish published", SlotStatusPublished, TransitionUnpublish, SlotStatusDraft, nil},
		{"reserve published", SlotStatusPublished, TransitionReserve, SlotStatusBooked, nil},
		{"release booked", SlotStatusBooked, TransitionRelease, SlotStatusPublished, nil},
		{"publish published", SlotStatusPublished, TransitionPublish, "", ErrIllegalTransition},
		{"reserve draft", SlotStatusDraft, TransitionReserve, "", ErrIllegalTransition},
		{"unpublish booked", SlotStatusBooked, TransitionUnpublish, "", ErrIllegalTransition},
		{"release published", SlotStatusPublished, TransitionRelease, "", ErrIllegalTransition},
		{"unknown status", SlotStatus("ARCHIVED"), TransitionPublish, "", ErrUnknownSlotStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Next(tt.t)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.from, tt.t.RequiredStatus())
		})
	}
}

func TestParseSlotStatus(t *testing.T) {
	s, err := ParseSlotStatus("BOOKED")
	require.NoError(t, err)
	assert.Equal(t, SlotStatusBooked, s)

	_, err = ParseSlotStatus("booked")
	assert.ErrorIs(t, err, ErrUnknownSlotStatus)
}

func TestScheduleTemplate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	require.NoError(t, err)

	tmpl := DefaultScheduleTemplate()
	assert.Equal(t, 12, tmpl.Size())
	assert.Equal(t, time.Hour, tmpl.Duration())
	assert.True(t, tmpl.Contains(types.MustTimeString("09:00")))
	assert.True(t, tmpl.Contains(types.MustTimeString("20:00")))
	assert.False(t, tmpl.Contains(types.MustTimeString("21:00")))

	date := time.Date(2026, 10, 20, 0, 0, 0, 0, loc)
	starts := tmpl.StartsOn(date, loc)
	require.Len(t, starts, 12)
	assert.Equal(t, time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC), starts[0].UTC())

	assert.True(t, tmpl.Matches(time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC), loc))
	assert.False(t, tmpl.Matches(time.Date(2026, 10, 20, 16, 30, 0, 0, time.UTC), loc))
}

func TestNewScheduleTemplate(t *testing.T) {
	tmpl, err := NewScheduleTemplate([]string{"18:00", "10:30", "18:00"}, 90)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:30", "18:00"}, tmpl.Times)

	_, err = NewScheduleTemplate([]string{"25:00"}, 60)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)

	_, err = NewScheduleTemplate(nil, 60)
	assert.Error(t, err)

	_, err = NewScheduleTemplate([]string{"10:00"}, 5)
	assert.Error(t, err)
}

func TestDiscountCode_CheckUsable(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	base := func() DiscountCode {
		return DiscountCode{Code: "AUTUMN10", Type: DiscountTypePercent, Percent: 10, Active: true}
	}

	tests := []struct {
		name   string
		mutate func(d *DiscountCode)
		want   DiscountRejectReason
	}{
		{"usable", func(d *DiscountCode) {}, ""},
		{"inactive wins over expiry", func(d *DiscountCode) {
			d.Active = false
			d.ValidUntil = ptr.Ptr(now.Add(-time.Hour))
		}, RejectInactive},
		{"not yet valid", func(d *DiscountCode) { d.ValidFrom = ptr.Ptr(now.Add(time.Minute)) }, RejectNotYetValid},
		{"valid from boundary", func(d *DiscountCode) { d.ValidFrom = ptr.Ptr(now) }, ""},
		{"expired", func(d *DiscountCode) { d.ValidUntil = ptr.Ptr(now.Add(-time.Second)) }, RejectExpired},
		{"valid until boundary", func(d *DiscountCode) { d.ValidUntil = ptr.Ptr(now) }, ""},
		{"exhausted", func(d *DiscountCode) {
			d.MaxRedemptions = ptr.Ptr(5)
			d.RedeemedCount = 5
		}, RejectExhausted},
		{"redemptions left", func(d *DiscountCode) {
			d.MaxRedemptions = ptr.Ptr(5)
			d.RedeemedCount = 4
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(&d)
			assert.Equal(t, tt.want, d.CheckUsable(now))
		})
	}
}

func TestDiscountCode_AppliesTo(t *testing.T) {
	global := DiscountCode{}
	scoped := DiscountCode{PartnerID: ptr.Ptr(int64(7))}

	assert.True(t, global.AppliesTo(1))
	assert.True(t, scoped.AppliesTo(7))
	assert.False(t, scoped.AppliesTo(8))
	assert.Equal(t, "SPRING", NormalizeCode("  spring "))
}

func TestDayCounts_RemainingFor(t *testing.T) {
	c := DayCounts{Draft: 9, Virtual: 7, Published: 2, Booked: 1, Capacity: 12}

	assert.Equal(t, 10, c.RemainingFor(BaselineAll, true))
	assert.Equal(t, 10, c.RemainingFor(BaselineFuture, false))
	assert.Equal(t, 0, c.RemainingFor(BaselineFuture, true))
	assert.Equal(t, 2, c.RemainingFor(BaselineNone, false))

	over := DayCounts{Published: 5, Capacity: 3}
	assert.Equal(t, 0, over.RemainingFor(BaselineAll, false))
}

func TestParseBaselineMode(t *testing.T) {
	mode, err := ParseBaselineMode("", BaselineFuture)
	require.NoError(t, err)
	assert.Equal(t, BaselineFuture, mode)

	mode, err = ParseBaselineMode("none", BaselineFuture)
	require.NoError(t, err)
	assert.Equal(t, BaselineNone, mode)

	_, err = ParseBaselineMode("past", BaselineFuture)
	assert.Error(t, err)
}

func TestBooking_Helpers(t *testing.T) {
	b := Booking{Status: BookingStatusPending, TotalAmountCents: 7191, DiscountAmountCents: 799}
	assert.Equal(t, int64(7990), b.BaseTotalCents())
	assert.True(t, b.IsRepriceable())
	assert.True(t, b.CanBeCancelled())

	b.Status = BookingStatusConfirmed
	assert.False(t, b.IsRepriceable())
	assert.True(t, b.IsActive())

	b.Status = BookingStatusCancelled
	assert.False(t, b.CanBeCancelled())
	assert.False(t, b.IsActive())
}
