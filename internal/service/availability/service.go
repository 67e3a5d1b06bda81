package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability/models"
)

// Service агрегирует статусы слотов по дням и месяцам.
// Виртуальные слоты (время шаблона без строки в БД) считаются DRAFT.
type Service struct {
	slotRepo     SlotRepository
	partnerRepo  PartnerRepository
	txManager    TransactionManager
	template     domain.ScheduleTemplate
	defaultMode  domain.BaselineMode
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	slotRepo SlotRepository,
	partnerRepo PartnerRepository,
	txManager TransactionManager,
	template domain.ScheduleTemplate,
	defaultMode domain.BaselineMode,
	logger Logger,
) *Service {
	if defaultMode == "" {
		defaultMode = domain.BaselineFuture
	}
	return &Service{
		slotRepo:     slotRepo,
		partnerRepo:  partnerRepo,
		txManager:    txManager,
		template:     template,
		defaultMode:  defaultMode,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// MonthCounts возвращает счетчики draft/published/booked и остаток емкости для каждого дня месяца
func (s *Service) MonthCounts(ctx context.Context, req *models.MonthRequest) (*models.MonthResponse, error) {
	s.logger.Info("MonthCounts: partner=%d, month=%s, mode=%q", req.PartnerID, req.Month.Format(domain.MonthFormat), req.BaselineMode)

	mode, err := domain.ParseBaselineMode(req.BaselineMode, s.defaultMode)
	if err != nil {
		s.logger.Warn("MonthCounts: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.CapacityPerDay != nil && *req.CapacityPerDay < 0 {
		return nil, fmt.Errorf("%w: capacityPerDay must not be negative", ErrInvalidInput)
	}

	partner, loc, err := s.getPartner(ctx, "MonthCounts", req.PartnerID)
	if err != nil {
		return nil, err
	}

	capacity := partner.Capacity()
	if req.CapacityPerDay != nil {
		capacity = *req.CapacityPerDay
	}

	first := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	rows, err := s.loadRange(ctx, "MonthCounts", partner.ID, first, next)
	if err != nil {
		return nil, err
	}
	byDay := groupByDay(rows, loc)

	today := domain.StartOfDay(s.timeProvider.Now(), loc)
	days := make([]models.DayCounts, 0, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateFormat)
		counts := countDay(mergeDay(s.template, day, loc, byDay[key]))
		counts.Capacity = capacity
		counts.Remaining = counts.RemainingFor(mode, day.Before(today))

		days = append(days, models.DayCounts{
			Date:        key,
			Draft:       counts.Draft,
			Published:   counts.Published,
			Booked:      counts.Booked,
			Virtual:     counts.Virtual,
			OffSchedule: counts.OffSchedule,
			Capacity:    counts.Capacity,
			Remaining:   counts.Remaining,
		})
	}

	return &models.MonthResponse{
		PartnerID:    partner.ID,
		Month:        first.Format(domain.MonthFormat),
		BaselineMode: string(mode),
		Capacity:     capacity,
		ScheduleSize: s.template.Size(),
		Days:         days,
	}, nil
}

// DayDetail возвращает полное расписание дня: шаблон, объединенный с материализованными слотами
func (s *Service) DayDetail(ctx context.Context, partnerID int64, date time.Time) (*models.DayResponse, error) {
	s.logger.Info("DayDetail: partner=%d, date=%s", partnerID, date.Format(domain.DateFormat))

	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	partner, loc, err := s.getPartner(ctx, "DayDetail", partnerID)
	if err != nil {
		return nil, err
	}

	day := domain.DateIn(date, loc)
	rows, err := s.loadRange(ctx, "DayDetail", partner.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	views := mergeDay(s.template, day, loc, rows)
	slots := make([]models.SlotView, 0, len(views))
	for _, v := range views {
		slots = append(slots, models.SlotView{
			SlotID:      v.SlotID,
			StartTime:   v.StartTime,
			EndTime:     v.EndTime,
			Status:      string(v.Status),
			Virtual:     v.Virtual,
			OffSchedule: v.OffSchedule,
		})
	}

	return &models.DayResponse{
		PartnerID: partner.ID,
		Date:      day.Format(domain.DateFormat),
		Slots:     slots,
	}, nil
}

func (s *Service) loadRange(ctx context.Context, op string, partnerID int64, from, to time.Time) ([]*domain.Slot, error) {
	var rows []*domain.Slot
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.slotRepo.ListByRange(txCtx, partnerID, from, to)
		return err
	})
	if err != nil {
		s.logger.Error("%s: failed to list slots of partner=%d: %v", op, partnerID, err)
		return nil, fmt.Errorf("%w: %s - list slots: %v", ErrInternal, op, err)
	}
	return rows, nil
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

// groupByDay раскладывает слоты по локальной календарной дате партнера
func groupByDay(rows []*domain.Slot, loc *time.Location) map[string][]*domain.Slot {
	result := make(map[string][]*domain.Slot)
	for _, row := range rows {
		key := row.StartTime.In(loc).Format(domain.DateFormat)
		result[key] = append(result[key], row)
	}
	return result
}

// mergeDay объединяет шаблон дня с материализованными слотами по времени начала.
// При совпадении побеждает материализованный слот. Слоты вне шаблона помечаются OffSchedule.
func mergeDay(template domain.ScheduleTemplate, day time.Time, loc *time.Location, rows []*domain.Slot) []domain.SlotView {
	byStart := make(map[int64]domain.SlotView, template.Size()+len(rows))

	for _, start := range template.StartsOn(day, loc) {
		byStart[start.Unix()] = domain.SlotView{
			StartTime: start,
			EndTime:   start.Add(template.Duration()),
			Status:    domain.SlotStatusDraft,
			Virtual:   true,
		}
	}

	for _, row := range rows {
		id := row.ID
		byStart[row.StartTime.Unix()] = domain.SlotView{
			SlotID:      &id,
			StartTime:   row.StartTime.In(loc),
			EndTime:     row.EndTime.In(loc),
			Status:      row.Status,
			OffSchedule: !template.Matches(row.StartTime, loc),
		}
	}

	views := make([]domain.SlotView, 0, len(byStart))
	for _, v := range byStart {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].StartTime.Before(views[j].StartTime) })
	return views
}

func countDay(views []domain.SlotView) domain.DayCounts {
	var c domain.DayCounts
	for _, v := range views {
		if v.OffSchedule {
			c.OffSchedule++
			continue
		}
		switch v.Status {
		case domain.SlotStatusDraft:
			c.Draft++
			if v.Virtual {
				c.Virtual++
			}
		case domain.SlotStatusPublished:
			c.Published++
		case domain.SlotStatusBooked:
			c.Booked++
		}
	}
	return c
}
