package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing/models"
)

var hundred = decimal.NewFromInt(100)

// BaseTotal стоимость без скидки: тариф за одного участника или тариф 2+ умноженный на число участников.
// Границы числа участников проверяет вызывающая сторона.
func BaseTotal(p *domain.Partner, participantCount int) int64 {
	if participantCount == 1 {
		return p.Price1PaxCents
	}
	return p.Price2PlusCents * int64(participantCount)
}

// PercentOf возвращает round-half-up(amount * percent / 100) в целых центах
func PercentOf(amountCents int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(amountCents).
		Mul(percent).
		Shift(-2).
		Round(0).
		IntPart()
}

// Split делит сумму на предоплату и остаток. Остаток вычисляется, а не округляется отдельно.
func Split(totalCents int64, feePercent decimal.Decimal) models.Breakdown {
	fee := clampPercent(feePercent)
	deposit := PercentOf(totalCents, fee)
	return models.Breakdown{
		TotalCents:   totalCents,
		DepositCents: deposit,
		RestCents:    totalCents - deposit,
	}
}

// DiscountAmount размер скидки по промокоду от базовой стоимости.
// PERCENT округляется half-up, FIXED не превышает базовую стоимость.
func DiscountAmount(code *domain.DiscountCode, baseTotalCents int64) int64 {
	var amount int64
	switch code.Type {
	case domain.DiscountTypePercent:
		amount = PercentOf(baseTotalCents, decimal.NewFromInt(int64(code.Percent)))
	case domain.DiscountTypeFixed:
		amount = code.AmountCents
	}
	if amount > baseTotalCents {
		amount = baseTotalCents
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// Reprice пересчитывает стоимость бронирования от базовой суммы.
// code == nil снимает скидку.
func Reprice(b *domain.Booking, baseTotalCents int64, feePercent decimal.Decimal, code *domain.DiscountCode) {
	var discount int64
	var codeID *int64
	if code != nil {
		discount = DiscountAmount(code, baseTotalCents)
		id := code.ID
		codeID = &id
	}

	split := Split(baseTotalCents-discount, feePercent)
	b.TotalAmountCents = split.TotalCents
	b.DepositAmountCents = split.DepositCents
	b.RestAmountCents = split.RestCents
	b.DiscountAmountCents = discount
	b.DiscountCodeID = codeID
}

func clampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
