package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/booking"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/events"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing"
)

// UseCase use case для бронирования опубликованного слота
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	partnerRepo  PartnerRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	partnerRepo PartnerRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		partnerRepo:  partnerRepo,
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

// Execute бронирует слот: PUBLISHED -> BOOKED и создает бронирование PENDING в одной транзакции.
// Переход статуса выполняется условным обновлением, поэтому из двух конкурентных
// запросов на один слот успешен ровно один, второй получает ErrSlotAlreadyBooked.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: partner=%d, start=%s, participants=%d",
		req.PartnerID, req.StartTime.Format(time.RFC3339), req.ParticipantCount)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем партнера (тарифы и процент предоплаты)
	partner, err := uc.partnerRepo.GetByID(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			uc.logger.Warn("CreateBooking: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: failed to get partner: %v", ErrInternal, err)
	}

	// 3. Слот, который уже начался, забронировать нельзя
	now := uc.timeProvider.Now()
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateBooking: slot start=%s is not in the future", req.StartTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: slot has already started", ErrInvalidInput)
	}

	var (
		slot     *domain.Slot
		customer *domain.Customer
		booking  *domain.Booking
	)

	// 4. Слот, клиент и бронирование в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем слот с блокировкой (FOR UPDATE)
		current, err := uc.slotRepo.GetByStartTime(txCtx, partner.ID, req.StartTime)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotOpen
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		switch current.Status {
		case domain.SlotStatusBooked:
			return ErrSlotAlreadyBooked
		case domain.SlotStatusDraft:
			return ErrSlotNotOpen
		}

		// 4.2. Compare-and-swap PUBLISHED -> BOOKED
		slot, err = uc.slotRepo.TransitionStatus(txCtx, current.ID, domain.SlotStatusPublished, domain.SlotStatusBooked)
		if err != nil {
			if errors.Is(err, slotRepo.ErrStatusMismatch) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
		}

		// 4.3. Находим или создаем клиента
		customer, err = uc.customerRepo.Upsert(txCtx, &domain.Customer{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		// 4.4. Рассчитываем стоимость и создаем бронирование
		price := pricing.Split(pricing.BaseTotal(partner, req.ParticipantCount), partner.FeePercent)
		booking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			SlotID:             slot.ID,
			PartnerID:          partner.ID,
			CustomerID:         customer.ID,
			ParticipantCount:   req.ParticipantCount,
			Status:             domain.BookingStatusPending,
			TotalAmountCents:   price.TotalCents,
			DepositAmountCents: price.DepositCents,
			RestAmountCents:    price.RestCents,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return ErrSlotAlreadyBooked
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			uc.metrics.RecordReservationConflict()
			uc.logger.Warn("CreateBooking: slot partner=%d start=%s already booked",
				req.PartnerID, req.StartTime.Format(time.RFC3339))
		case errors.Is(err, ErrSlotNotOpen):
			uc.logger.Warn("CreateBooking: slot partner=%d start=%s is not published",
				req.PartnerID, req.StartTime.Format(time.RFC3339))
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	uc.metrics.RecordSlotTransition(string(domain.TransitionReserve), 1)
	uc.logger.Info("CreateBooking: successfully created booking id=%d for slot id=%d", booking.ID, slot.ID)

	// 5. Событие для писем и инициации оплаты публикуется после коммита
	event := events.BookingCreated{
		BookingID:          booking.ID,
		PartnerID:          partner.ID,
		SlotID:             slot.ID,
		CustomerID:         customer.ID,
		CustomerEmail:      customer.Email,
		StartTime:          slot.StartTime,
		ParticipantCount:   booking.ParticipantCount,
		TotalAmountCents:   booking.TotalAmountCents,
		DepositAmountCents: booking.DepositAmountCents,
		CreatedAt:          booking.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, events.SubjectBookingCreated, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	return &Response{
		ID:                 booking.ID,
		SlotID:             slot.ID,
		PartnerID:          partner.ID,
		CustomerID:         customer.ID,
		StartTime:          slot.StartTime,
		EndTime:            slot.EndTime,
		ParticipantCount:   booking.ParticipantCount,
		Status:             string(booking.Status),
		TotalAmountCents:   booking.TotalAmountCents,
		DepositAmountCents: booking.DepositAmountCents,
		RestAmountCents:    booking.RestAmountCents,
		CreatedAt:          booking.CreatedAt,
	}, nil
}
