package apply_discount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing"
)

// UseCase use case для применения и снятия промокода на бронировании
type UseCase struct {
	bookingRepo  BookingRepository
	partnerRepo  PartnerRepository
	discountRepo DiscountRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	partnerRepo PartnerRepository,
	discountRepo DiscountRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		partnerRepo:  partnerRepo,
		discountRepo: discountRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute применяет промокод к бронированию или снимает скидку, если код пустой.
// Базовая сумма всегда восстанавливается как total + discount, поэтому повторное
// применение того же кода дает те же суммы.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	code, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ApplyDiscount: validation failed: %v", err)
		return nil, err
	}
	uc.logger.Info("ApplyDiscount: booking=%d, code=%q", req.BookingID, code)

	now := uc.timeProvider.Now()
	var (
		booking *domain.Booking
		applied *domain.DiscountCode
	)

	// 2. Чтение, пересчет и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой (FOR UPDATE)
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.IsRepriceable() {
			return fmt.Errorf("%w: booking id=%d has status %s", ErrPricingLocked, booking.ID, booking.Status)
		}

		// 2.2. Процент предоплаты партнера
		partner, err := uc.partnerRepo.GetByID(txCtx, booking.PartnerID)
		if err != nil {
			if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
				return fmt.Errorf("%w: partner id=%d of booking id=%d not found", ErrInternal, booking.PartnerID, booking.ID)
			}
			return fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
		}

		// 2.3. Ищем и проверяем промокод
		if code != "" {
			applied, err = uc.resolveCode(txCtx, code, booking.PartnerID, now)
			if err != nil {
				return err
			}
		}

		// 2.4. Пересчет от базовой суммы, скидки не суммируются
		pricing.Reprice(booking, booking.BaseTotalCents(), partner.FeePercent, applied)

		if err := uc.bookingRepo.UpdatePricing(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to update pricing: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		var rejectedErr *CodeRejectedError
		switch {
		case errors.As(err, &rejectedErr):
			uc.metrics.RecordDiscountRejected(string(rejectedErr.Reason))
			uc.logger.Warn("ApplyDiscount: %v", err)
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("ApplyDiscount: booking id=%d not found", req.BookingID)
		case errors.Is(err, ErrPricingLocked):
			uc.logger.Warn("ApplyDiscount: %v", err)
		default:
			uc.logger.Error("ApplyDiscount: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.logger.Info("ApplyDiscount: booking id=%d repriced, total=%d, discount=%d",
		booking.ID, booking.TotalAmountCents, booking.DiscountAmountCents)

	// 3. Событие публикуется после коммита
	event := events.BookingRepriced{
		BookingID:           booking.ID,
		DiscountCodeID:      booking.DiscountCodeID,
		DiscountAmountCents: booking.DiscountAmountCents,
		TotalAmountCents:    booking.TotalAmountCents,
		DepositAmountCents:  booking.DepositAmountCents,
		RestAmountCents:     booking.RestAmountCents,
		RepricedAt:          now,
	}
	if err := uc.publisher.Publish(ctx, events.SubjectBookingRepriced, event); err != nil {
		uc.logger.Error("ApplyDiscount: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	resp := &Response{
		BookingID:           booking.ID,
		DiscountCodeID:      booking.DiscountCodeID,
		DiscountAmountCents: booking.DiscountAmountCents,
		TotalAmountCents:    booking.TotalAmountCents,
		DepositAmountCents:  booking.DepositAmountCents,
		RestAmountCents:     booking.RestAmountCents,
	}
	if applied != nil {
		resp.DiscountCode = applied.Code
	}
	return resp, nil
}

// resolveCode находит код партнера или глобальный код и проверяет его применимость.
// Код партнера имеет приоритет над глобальным с тем же названием.
func (uc *UseCase) resolveCode(ctx context.Context, code string, partnerID int64, now time.Time) (*domain.DiscountCode, error) {
	candidates, err := uc.discountRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find discount code: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		return nil, rejected(code, domain.RejectNotFound)
	}

	var global, own *domain.DiscountCode
	for _, c := range candidates {
		switch {
		case c.IsGlobal():
			if global == nil {
				global = c
			}
		case c.AppliesTo(partnerID):
			if own == nil {
				own = c
			}
		}
	}

	found := own
	if found == nil {
		found = global
	}
	if found == nil {
		return nil, rejected(code, domain.RejectWrongPartner)
	}

	if reason := found.CheckUsable(now); reason != "" {
		return nil, rejected(code, reason)
	}
	return found, nil
}
