package quote_booking

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/pricing/models"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	ParticipantCount int    `json:"participantCount"`
	StartTime        string `json:"startTime"` // RFC3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *QuoteRequest) ToServiceRequest(partnerID int64) (*models.QuoteRequest, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.QuoteRequest{
		PartnerID:        partnerID,
		ParticipantCount: r.ParticipantCount,
		StartTime:        startTime,
	}, nil
}
