package create_series

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots/models"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CreateSeriesRequest HTTP request model
type CreateSeriesRequest struct {
	StartDate string   `json:"startDate"` // "2026-10-19"
	EndDate   string   `json:"endDate"`   // "2026-10-25"
	Weekdays  []int    `json:"weekdays"`  // 0 = воскресенье
	Times     []string `json:"times"`     // ["10:00", "18:00"]
	Publish   bool     `json:"publish"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSeriesRequest) ToServiceRequest(partnerID int64) (*models.CreateSeriesRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	weekdays := make([]time.Weekday, len(r.Weekdays))
	for i, wd := range r.Weekdays {
		weekdays[i] = time.Weekday(wd)
	}

	times := make([]types.TimeString, len(r.Times))
	for i, t := range r.Times {
		times[i] = types.TimeString(t)
	}

	return &models.CreateSeriesRequest{
		PartnerID: partnerID,
		StartDate: startDate,
		EndDate:   endDate,
		Weekdays:  weekdays,
		Times:     times,
		Publish:   r.Publish,
	}, nil
}
