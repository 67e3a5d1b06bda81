package availability

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var amsterdam = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		panic(err)
	}
	return loc
}()

func at(day, hour int) time.Time {
	return time.Date(2026, 10, day, hour, 0, 0, 0, amsterdam)
}

func setup(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.PutPartner(domain.Partner{
		ID:              1,
		FeePercent:      decimal.NewFromInt(20),
		DailyCapacity:   12,
		Timezone:        "Europe/Amsterdam",
		Price1PaxCents:  4995,
		Price2PlusCents: 3995,
	})

	rows := []struct {
		start  time.Time
		status domain.SlotStatus
	}{
		{at(10, 10), domain.SlotStatusPublished},
		{at(20, 10), domain.SlotStatusPublished},
		{at(20, 11), domain.SlotStatusPublished},
		{at(20, 12), domain.SlotStatusBooked},
		{at(20, 13), domain.SlotStatusDraft},
	}
	for _, r := range rows {
		_, err := store.Slots().InsertIfAbsent(ctx, &domain.Slot{
			PartnerID: 1,
			StartTime: r.start,
			EndTime:   r.start.Add(time.Hour),
			Status:    r.status,
		})
		require.NoError(t, err)
	}

	return NewService(
		store.Slots(),
		store.Partners(),
		store,
		domain.DefaultScheduleTemplate(),
		domain.BaselineFuture,
		nopLogger{},
	).WithTimeProvider(fixedClock{now: time.Date(2026, 10, 15, 10, 30, 0, 0, amsterdam)})
}

func dayByDate(t *testing.T, resp *models.MonthResponse, date string) models.DayCounts {
	t.Helper()
	for _, d := range resp.Days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("day %s not found", date)
	return models.DayCounts{}
}

func TestMonthCounts_FutureMode(t *testing.T) {
	svc := setup(t)

	resp, err := svc.MonthCounts(context.Background(), &models.MonthRequest{PartnerID: 1, Month: at(1, 0)})
	require.NoError(t, err)

	assert.Equal(t, "2026-10", resp.Month)
	assert.Equal(t, "future", resp.BaselineMode)
	assert.Equal(t, 12, resp.ScheduleSize)
	require.Len(t, resp.Days, 31)

	day20 := dayByDate(t, resp, "2026-10-20")
	assert.Equal(t, models.DayCounts{
		Date:      "2026-10-20",
		Draft:     9,
		Published: 2,
		Booked:    1,
		Virtual:   8,
		Capacity:  12,
		Remaining: 10,
	}, day20)

	day10 := dayByDate(t, resp, "2026-10-10")
	assert.Equal(t, 1, day10.Published)
	assert.Equal(t, 0, day10.Remaining)

	today := dayByDate(t, resp, "2026-10-15")
	assert.Equal(t, 12, today.Remaining)
}

func TestMonthCounts_Modes(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	all, err := svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0), BaselineMode: "all"})
	require.NoError(t, err)
	assert.Equal(t, 11, dayByDate(t, all, "2026-10-10").Remaining)
	assert.Equal(t, 10, dayByDate(t, all, "2026-10-20").Remaining)

	none, err := svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0), BaselineMode: "none"})
	require.NoError(t, err)
	assert.Equal(t, "none", none.BaselineMode)
	assert.Equal(t, 1, dayByDate(t, none, "2026-10-20").Remaining)
	assert.Equal(t, 0, dayByDate(t, none, "2026-10-21").Remaining)

	capped, err := svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0), BaselineMode: "all", CapacityPerDay: ptr.Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, 0, dayByDate(t, capped, "2026-10-20").Remaining)
	assert.Equal(t, 1, dayByDate(t, capped, "2026-10-21").Remaining)
}

func TestMonthCounts_NeverExceedsScheduleSize(t *testing.T) {
	svc := setup(t)

	for _, mode := range []string{"all", "future", "none"} {
		resp, err := svc.MonthCounts(context.Background(), &models.MonthRequest{PartnerID: 1, Month: at(1, 0), BaselineMode: mode})
		require.NoError(t, err)
		for _, d := range resp.Days {
			assert.LessOrEqual(t, d.Draft+d.Published+d.Booked, resp.ScheduleSize, d.Date)
			assert.GreaterOrEqual(t, d.Remaining, 0, d.Date)
		}
	}
}

func TestMonthCounts_Validation(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	_, err := svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0), BaselineMode: "past"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0), CapacityPerDay: ptr.Ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 5, Month: at(1, 0)})
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestDayDetail(t *testing.T) {
	svc := setup(t)

	resp, err := svc.DayDetail(context.Background(), 1, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", resp.Date)
	require.Len(t, resp.Slots, 12)

	first := resp.Slots[0]
	assert.True(t, first.StartTime.Equal(at(20, 9)))
	assert.True(t, first.Virtual)
	assert.Nil(t, first.SlotID)
	assert.Equal(t, "DRAFT", first.Status)

	second := resp.Slots[1]
	assert.True(t, second.StartTime.Equal(at(20, 10)))
	assert.False(t, second.Virtual)
	assert.NotNil(t, second.SlotID)
	assert.Equal(t, "PUBLISHED", second.Status)

	assert.Equal(t, "BOOKED", resp.Slots[3].Status)
	assert.Equal(t, "DRAFT", resp.Slots[4].Status)
	assert.False(t, resp.Slots[4].Virtual)

	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.Before(resp.Slots[i].StartTime))
	}
}

func TestMonthCounts_SlotsOffTemplateAreSeparated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.PutPartner(domain.Partner{ID: 1, FeePercent: decimal.NewFromInt(20), DailyCapacity: 12, Timezone: "Europe/Amsterdam"})

	// все 12 слотов шаблона опубликованы, плюс три строки от прежнего расписания
	for hour := 9; hour <= 20; hour++ {
		_, err := store.Slots().InsertIfAbsent(ctx, &domain.Slot{
			PartnerID: 1, StartTime: at(20, hour), EndTime: at(20, hour+1), Status: domain.SlotStatusPublished,
		})
		require.NoError(t, err)
	}
	leftovers := []struct {
		start  time.Time
		status domain.SlotStatus
	}{
		{at(20, 8), domain.SlotStatusBooked},
		{at(20, 21), domain.SlotStatusPublished},
		{at(20, 9).Add(30 * time.Minute), domain.SlotStatusDraft},
	}
	for _, l := range leftovers {
		_, err := store.Slots().InsertIfAbsent(ctx, &domain.Slot{
			PartnerID: 1, StartTime: l.start, EndTime: l.start.Add(time.Hour), Status: l.status,
		})
		require.NoError(t, err)
	}

	svc := NewService(
		store.Slots(),
		store.Partners(),
		store,
		domain.DefaultScheduleTemplate(),
		domain.BaselineAll,
		nopLogger{},
	).WithTimeProvider(fixedClock{now: time.Date(2026, 10, 15, 10, 30, 0, 0, amsterdam)})

	resp, err := svc.MonthCounts(ctx, &models.MonthRequest{PartnerID: 1, Month: at(1, 0)})
	require.NoError(t, err)

	day := dayByDate(t, resp, "2026-10-20")
	assert.Equal(t, 12, day.Published)
	assert.Equal(t, 0, day.Booked)
	assert.Equal(t, 0, day.Draft)
	assert.Equal(t, 3, day.OffSchedule)
	assert.LessOrEqual(t, day.Draft+day.Published+day.Booked, resp.ScheduleSize)
	assert.Equal(t, 0, day.Remaining)

	detail, err := svc.DayDetail(ctx, 1, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, detail.Slots, 15)
	assert.True(t, detail.Slots[0].OffSchedule)
	assert.Equal(t, "BOOKED", detail.Slots[0].Status)
	assert.False(t, detail.Slots[1].OffSchedule)
	assert.True(t, detail.Slots[2].OffSchedule)
	assert.True(t, detail.Slots[14].OffSchedule)
}
