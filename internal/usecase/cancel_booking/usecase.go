package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
)

// UseCase use case для отмены бронирования с освобождением слота
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	refundWindow time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// refundWindow <= 0 заменяется на domain.DefaultRefundWindow.
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	refundWindow time.Duration,
	logger Logger,
) *UseCase {
	if refundWindow <= 0 {
		refundWindow = domain.DefaultRefundWindow
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		refundWindow: refundWindow,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute отменяет бронирование и возвращает слот в PUBLISHED.
// Отмена после начала сеанса невозможна (ErrTooLate).
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", bookingID)

	// 1. Валидация входных данных
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	var (
		booking        *domain.Booking
		slot           *domain.Slot
		refundEligible bool
	)

	// 2. Бронирование и слот меняются в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой (FOR UPDATE)
		var err error
		booking, err = uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			return ErrAlreadyCancelled
		}

		// 2.2. Слот нужен для времени начала
		slot, err = uc.slotRepo.GetByID(txCtx, booking.PartnerID, booking.SlotID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot id=%d of booking id=%d: %v", ErrInternal, booking.SlotID, booking.ID, err)
		}

		// 2.3. Правило возврата: до начала не меньше окна возврата
		untilStart := slot.StartTime.Sub(now)
		if untilStart <= 0 {
			return fmt.Errorf("%w: slot started at %s", ErrTooLate, slot.StartTime.Format(time.RFC3339))
		}
		refundEligible = untilStart >= uc.refundWindow

		// 2.4. Отменяем бронирование
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrAlreadyCancelled
			}
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 2.5. Освобождаем слот BOOKED -> PUBLISHED
		released, err := uc.slotRepo.TransitionStatus(txCtx, booking.SlotID, domain.SlotStatusBooked, domain.SlotStatusPublished)
		if err != nil {
			if errors.Is(err, slotRepo.ErrStatusMismatch) {
				return fmt.Errorf("%w: slot id=%d of active booking id=%d is not BOOKED", ErrInternal, booking.SlotID, booking.ID)
			}
			return fmt.Errorf("%w: failed to release slot id=%d: %v", ErrInternal, booking.SlotID, err)
		}
		slot = released

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("CancelBooking: booking id=%d not found", bookingID)
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrTooLate):
			uc.logger.Warn("CancelBooking: booking id=%d: %v", bookingID, err)
		default:
			uc.logger.Error("CancelBooking: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.metrics.RecordSlotTransition(string(domain.TransitionRelease), 1)
	uc.logger.Info("CancelBooking: booking id=%d cancelled, slot id=%d released, refundEligible=%t",
		booking.ID, slot.ID, refundEligible)

	// 3. Событие для возврата депозита публикуется после коммита
	event := events.BookingCancelled{
		BookingID:          booking.ID,
		SlotID:             slot.ID,
		RefundEligible:     refundEligible,
		DepositAmountCents: booking.DepositAmountCents,
		CancelledAt:        now,
	}
	if err := uc.publisher.Publish(ctx, events.SubjectBookingCancelled, event); err != nil {
		uc.logger.Error("CancelBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{
		BookingID:      booking.ID,
		SlotID:         slot.ID,
		Status:         string(domain.BookingStatusCancelled),
		RefundEligible: refundEligible,
		CancelledAt:    now,
	}, nil
}
