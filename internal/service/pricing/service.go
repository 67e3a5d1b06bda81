package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	partnerRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/partner"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing/models"
)

// Service сервис расчета стоимости бронирования
type Service struct {
	partnerRepo PartnerRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса расчета стоимости
func NewService(partnerRepo PartnerRepository, logger Logger) *Service {
	return &Service{
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

// Quote рассчитывает стоимость, предоплату и остаток для числа участников
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if req.ParticipantCount < domain.MinParticipants || req.ParticipantCount > domain.MaxParticipants {
		s.logger.Warn("Quote: invalid participant count %d", req.ParticipantCount)
		return nil, fmt.Errorf("%w: participant count must be between %d and %d",
			ErrInvalidInput, domain.MinParticipants, domain.MaxParticipants)
	}
	if req.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	partner, err := s.partnerRepo.GetByID(ctx, req.PartnerID)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrPartnerNotFound) {
			s.logger.Warn("Quote: partner id=%d not found", req.PartnerID)
			return nil, ErrPartnerNotFound
		}
		s.logger.Error("Quote: failed to get partner id=%d: %v", req.PartnerID, err)
		return nil, fmt.Errorf("%w: Quote - get partner: %v", ErrInternal, err)
	}

	breakdown := Split(BaseTotal(partner, req.ParticipantCount), partner.FeePercent)

	return &models.QuoteResponse{
		PartnerID:        partner.ID,
		ParticipantCount: req.ParticipantCount,
		StartTime:        req.StartTime,
		Breakdown:        breakdown,
	}, nil
}
