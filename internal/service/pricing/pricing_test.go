package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePartners map[int64]*domain.Partner

func (f fakePartners) GetByID(_ context.Context, id int64) (*domain.Partner, error) {
	p, ok := f[id]
	if !ok {
		return nil, partnerRepo.ErrPartnerNotFound
	}
	return p, nil
}

func examplePartner() *domain.Partner {
	return &domain.Partner{
		ID:              1,
		Price1PaxCents:  4995,
		Price2PlusCents: 3995,
		FeePercent:      decimal.NewFromInt(20),
	}
}

func TestBaseTotal(t *testing.T) {
	p := examplePartner()
	assert.Equal(t, int64(4995), BaseTotal(p, 1))
	assert.Equal(t, int64(7990), BaseTotal(p, 2))
	assert.Equal(t, int64(11985), BaseTotal(p, 3))
}

func TestSplit_WorkedExample(t *testing.T) {
	got := Split(7990, decimal.NewFromInt(20))
	assert.Equal(t, models.Breakdown{TotalCents: 7990, DepositCents: 1598, RestCents: 6392}, got)
}

func TestPercentOf_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		amount  int64
		percent string
		want    int64
	}{
		{7995, "10", 800}, // 799.5
		{7985, "10", 799}, // 798.5 -> 799
		{25, "50", 13},    // 12.5
		{1000, "12.5", 125},
		{999, "0", 0},
		{999, "100", 999},
		{1, "49", 0},
		{1, "50", 1},
	}

	for _, tt := range tests {
		got := PercentOf(tt.amount, decimal.RequireFromString(tt.percent))
		assert.Equal(t, tt.want, got, "%d * %s%%", tt.amount, tt.percent)
	}
}

func TestSplit_DepositPlusRestEqualsTotal(t *testing.T) {
	prices := []int64{1, 99, 1999, 3995, 4995, 12345}
	fees := []string{"0", "1", "12.5", "20", "33", "50", "99.9", "100"}

	for _, price1 := range prices {
		for _, price2 := range prices {
			for _, fee := range fees {
				p := &domain.Partner{Price1PaxCents: price1, Price2PlusCents: price2, FeePercent: decimal.RequireFromString(fee)}
				for count := domain.MinParticipants; count <= domain.MaxParticipants; count++ {
					total := BaseTotal(p, count)
					b := Split(total, p.FeePercent)

					require.Equal(t, total, b.DepositCents+b.RestCents)
					require.Equal(t, PercentOf(total, p.FeePercent), b.DepositCents)
					require.GreaterOrEqual(t, b.RestCents, int64(0))
				}
			}
		}
	}
}

func TestSplit_ClampsFee(t *testing.T) {
	assert.Equal(t, int64(100), Split(100, decimal.NewFromInt(150)).DepositCents)
	assert.Equal(t, int64(0), Split(100, decimal.NewFromInt(-5)).DepositCents)
}

func TestDiscountAmount(t *testing.T) {
	percent := &domain.DiscountCode{Type: domain.DiscountTypePercent, Percent: 10}
	assert.Equal(t, int64(799), DiscountAmount(percent, 7990))

	full := &domain.DiscountCode{Type: domain.DiscountTypePercent, Percent: 100}
	assert.Equal(t, int64(7990), DiscountAmount(full, 7990))

	fixed := &domain.DiscountCode{Type: domain.DiscountTypeFixed, AmountCents: 1500}
	assert.Equal(t, int64(1500), DiscountAmount(fixed, 7990))

	huge := &domain.DiscountCode{Type: domain.DiscountTypeFixed, AmountCents: 100000}
	assert.Equal(t, int64(4995), DiscountAmount(huge, 4995))
}

func TestReprice_WorkedExample(t *testing.T) {
	b := &domain.Booking{TotalAmountCents: 7990, DepositAmountCents: 1598, RestAmountCents: 6392}
	code := &domain.DiscountCode{ID: 3, Type: domain.DiscountTypePercent, Percent: 10}

	Reprice(b, b.BaseTotalCents(), decimal.NewFromInt(20), code)

	assert.Equal(t, int64(799), b.DiscountAmountCents)
	assert.Equal(t, int64(7191), b.TotalAmountCents)
	assert.Equal(t, int64(1438), b.DepositAmountCents)
	assert.Equal(t, int64(5753), b.RestAmountCents)
	assert.Equal(t, ptr.Ptr(int64(3)), b.DiscountCodeID)

	// повторное применение от восстановленной базы не накапливает скидку
	Reprice(b, b.BaseTotalCents(), decimal.NewFromInt(20), code)
	assert.Equal(t, int64(7191), b.TotalAmountCents)

	Reprice(b, b.BaseTotalCents(), decimal.NewFromInt(20), nil)
	assert.Equal(t, int64(7990), b.TotalAmountCents)
	assert.Equal(t, int64(1598), b.DepositAmountCents)
	assert.Equal(t, int64(0), b.DiscountAmountCents)
	assert.Nil(t, b.DiscountCodeID)
}

func TestReprice_FixedNeverNegative(t *testing.T) {
	b := &domain.Booking{TotalAmountCents: 4995}
	Reprice(b, 4995, decimal.NewFromInt(20), &domain.DiscountCode{ID: 1, Type: domain.DiscountTypeFixed, AmountCents: 10000})

	assert.Equal(t, int64(0), b.TotalAmountCents)
	assert.Equal(t, int64(0), b.DepositAmountCents)
	assert.Equal(t, int64(0), b.RestAmountCents)
	assert.Equal(t, int64(4995), b.BaseTotalCents())
}

func TestService_Quote(t *testing.T) {
	svc := NewService(fakePartners{1: examplePartner()}, nopLogger{})
	start := time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC)

	resp, err := svc.Quote(context.Background(), &models.QuoteRequest{PartnerID: 1, ParticipantCount: 2, StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, int64(7990), resp.TotalCents)
	assert.Equal(t, int64(1598), resp.DepositCents)
	assert.Equal(t, int64(6392), resp.RestCents)

	_, err = svc.Quote(context.Background(), &models.QuoteRequest{PartnerID: 1, ParticipantCount: 4, StartTime: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Quote(context.Background(), &models.QuoteRequest{PartnerID: 1, ParticipantCount: 0, StartTime: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Quote(context.Background(), &models.QuoteRequest{PartnerID: 9, ParticipantCount: 1, StartTime: start})
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}
