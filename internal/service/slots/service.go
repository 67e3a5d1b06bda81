package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
)

// Service управляет жизненным циклом слотов: DRAFT -> PUBLISHED -> DRAFT, удаление.
// Бронирование и освобождение слота выполняют usecase reserve_slot и cancel_booking.
type Service struct {
	slotRepo     SlotRepository
	partnerRepo  PartnerRepository
	txManager    TransactionManager
	template     domain.ScheduleTemplate
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	partnerRepo PartnerRepository,
	txManager TransactionManager,
	template domain.ScheduleTemplate,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		partnerRepo:  partnerRepo,
		txManager:    txManager,
		template:     template,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// CreateSeries создает слоты для каждой подходящей даты диапазона и каждого времени.
// Дубликаты (partner, start) пропускаются и считаются, не прерывая пакет.
// Прошедшие даты и сегодняшнее время не позже текущего момента не генерируются вовсе.
func (s *Service) CreateSeries(ctx context.Context, req *models.CreateSeriesRequest) (*models.CreateSeriesResponse, error) {
	s.logger.Info("CreateSeries: partner=%d, range=%s..%s, weekdays=%v, times=%v, publish=%t",
		req.PartnerID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.Weekdays, req.Times, req.Publish)

	if err := validateSeries(req, s.template); err != nil {
		s.logger.Warn("CreateSeries: validation failed: %v", err)
		return nil, err
	}

	partner, loc, err := s.getPartner(ctx, "CreateSeries", req.PartnerID)
	if err != nil {
		return nil, err
	}

	status := domain.SlotStatusDraft
	if req.Publish {
		status = domain.SlotStatusPublished
	}

	weekdays := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays[wd] = true
	}

	now := s.timeProvider.Now()
	today := domain.StartOfDay(now, loc)
	last := domain.DateIn(req.EndDate, loc)

	resp := &models.CreateSeriesResponse{}
	for date := domain.DateIn(req.StartDate, loc); !date.After(last); date = date.AddDate(0, 0, 1) {
		if date.Before(today) || !weekdays[date.Weekday()] {
			continue
		}

		for _, ts := range req.Times {
			start, err := ts.On(date, loc)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if !start.After(now) {
				continue
			}

			slot := &domain.Slot{
				PartnerID: partner.ID,
				StartTime: start,
				EndTime:   start.Add(s.template.Duration()),
				Status:    status,
			}
			created, err := s.slotRepo.InsertIfAbsent(ctx, slot)
			if err != nil {
				s.logger.Error("CreateSeries: failed to insert slot partner=%d start=%s: %v",
					partner.ID, start.Format(time.RFC3339), err)
				return nil, fmt.Errorf("%w: CreateSeries - insert slot: %v", ErrInternal, err)
			}
			if created {
				resp.Created++
			} else {
				resp.SkippedDuplicates++
			}
		}
	}

	s.metrics.RecordSlotTransition("create", resp.Created)
	s.logger.Info("CreateSeries: partner=%d created=%d skipped=%d", partner.ID, resp.Created, resp.SkippedDuplicates)
	return resp, nil
}

// Publish переводит слот DRAFT -> PUBLISHED.
// Виртуальный слот (нет строки, но время входит в расписание) материализуется сразу в статусе PUBLISHED.
func (s *Service) Publish(ctx context.Context, partnerID int64, startTime time.Time) (*models.SlotResponse, error) {
	s.logger.Info("Publish: partner=%d, start=%s", partnerID, startTime.Format(time.RFC3339))

	if startTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	_, loc, err := s.getPartner(ctx, "Publish", partnerID)
	if err != nil {
		return nil, err
	}

	if !startTime.After(s.timeProvider.Now()) {
		s.logger.Warn("Publish: start=%s is in the past", startTime.Format(time.RFC3339))
		return nil, fmt.Errorf("%w: cannot publish a slot in the past", ErrInvalidInput)
	}

	var result *domain.Slot
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.slotRepo.GetByStartTime(txCtx, partnerID, startTime)
		if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
			return fmt.Errorf("%w: Publish - get slot: %v", ErrInternal, err)
		}

		if existing == nil {
			if !s.template.Matches(startTime, loc) {
				s.logger.Warn("Publish: start=%s is outside the schedule of partner=%d",
					startTime.Format(time.RFC3339), partnerID)
				return fmt.Errorf("%w: no slot at %s", ErrSlotNotFound, startTime.Format(time.RFC3339))
			}

			slot := &domain.Slot{
				PartnerID: partnerID,
				StartTime: startTime,
				EndTime:   startTime.Add(s.template.Duration()),
				Status:    domain.SlotStatusPublished,
			}
			created, err := s.slotRepo.InsertIfAbsent(txCtx, slot)
			if err != nil {
				return fmt.Errorf("%w: Publish - materialize slot: %v", ErrInternal, err)
			}
			if !created {
				return fmt.Errorf("%w: slot at %s was created concurrently", ErrConflict, startTime.Format(time.RFC3339))
			}
			result = slot
			return nil
		}

		if _, err := existing.Status.Next(domain.TransitionPublish); err != nil {
			return fmt.Errorf("%w: slot id=%d is %s", ErrConflict, existing.ID, existing.Status)
		}

		updated, err := s.slotRepo.TransitionStatus(txCtx, existing.ID, domain.SlotStatusDraft, domain.SlotStatusPublished)
		if err != nil {
			if errors.Is(err, slotRepo.ErrStatusMismatch) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: Publish - update status: %v", ErrInternal, err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, s.logTxError("Publish", err)
	}

	s.metrics.RecordSlotTransition(string(domain.TransitionPublish), 1)
	s.logger.Info("Publish: slot id=%d published", result.ID)
	return models.FromDomainSlot(result), nil
}

// Unpublish переводит слот PUBLISHED -> DRAFT. Забронированный слот снять нельзя.
func (s *Service) Unpublish(ctx context.Context, partnerID, slotID int64) error {
	s.logger.Info("Unpublish: partner=%d, slot=%d", partnerID, slotID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, partnerID, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return fmt.Errorf("%w: slot id=%d", ErrSlotNotFound, slotID)
			}
			return fmt.Errorf("%w: Unpublish - get slot: %v", ErrInternal, err)
		}

		if _, err := slot.Status.Next(domain.TransitionUnpublish); err != nil {
			return fmt.Errorf("%w: slot id=%d is %s", ErrConflict, slot.ID, slot.Status)
		}

		if _, err := s.slotRepo.TransitionStatus(txCtx, slot.ID, domain.SlotStatusPublished, domain.SlotStatusDraft); err != nil {
			if errors.Is(err, slotRepo.ErrStatusMismatch) {
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			return fmt.Errorf("%w: Unpublish - update status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return s.logTxError("Unpublish", err)
	}

	s.metrics.RecordSlotTransition(string(domain.TransitionUnpublish), 1)
	s.logger.Info("Unpublish: slot id=%d moved to draft", slotID)
	return nil
}

// DeleteMany удаляет незабронированные слоты партнера.
// Забронированные и неизвестные ID отклоняются по отдельности, остальные удаляются.
func (s *Service) DeleteMany(ctx context.Context, partnerID int64, slotIDs []int64) (*models.DeleteSlotsResponse, error) {
	s.logger.Info("DeleteMany: partner=%d, slots=%v", partnerID, slotIDs)

	ids, err := validateDeleteIDs(slotIDs)
	if err != nil {
		s.logger.Warn("DeleteMany: validation failed: %v", err)
		return nil, err
	}

	deleted, err := s.slotRepo.DeleteUnbooked(ctx, partnerID, ids)
	if err != nil {
		s.logger.Error("DeleteMany: failed to delete slots of partner=%d: %v", partnerID, err)
		return nil, fmt.Errorf("%w: DeleteMany - delete slots: %v", ErrInternal, err)
	}

	deletedSet := make(map[int64]struct{}, len(deleted))
	for _, id := range deleted {
		deletedSet[id] = struct{}{}
	}
	rejected := make([]int64, 0)
	for _, id := range ids {
		if _, ok := deletedSet[id]; !ok {
			rejected = append(rejected, id)
		}
	}

	s.metrics.RecordSlotTransition("delete", len(deleted))
	s.logger.Info("DeleteMany: partner=%d deleted=%d rejected=%v", partnerID, len(deleted), rejected)
	return &models.DeleteSlotsResponse{
		Deleted:     len(deleted),
		Rejected:    len(rejected),
		RejectedIDs: rejected,
	}, nil
}

func (s *Service) getPartner(ctx context.Context, op string, partnerID int64) (*domain.Partner, *time.Location, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			s.logger.Warn("%s: partner id=%d not found", op, partnerID)
			return nil, nil, ErrPartnerNotFound
		}
		s.logger.Error("%s: failed to get partner id=%d: %v", op, partnerID, err)
		return nil, nil, fmt.Errorf("%w: %s - get partner: %v", ErrInternal, op, err)
	}

	loc, err := partner.Location()
	if err != nil {
		s.logger.Error("%s: %v", op, err)
		return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return partner, loc, nil
}

// logTxError логирует ошибку транзакции с уровнем по ее типу
func (s *Service) logTxError(op string, err error) error {
	switch {
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrConflict), errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: %v", op, err)
	default:
		s.logger.Error("%s: %v", op, err)
		if !errors.Is(err, ErrInternal) {
			return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
		}
	}
	return err
}
