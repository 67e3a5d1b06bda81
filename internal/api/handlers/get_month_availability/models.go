package get_month_availability

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability/models"
)

// ToServiceRequest создает запрос сервиса из query параметров
// month (YYYY-MM, обязательный), capacityPerDay, baselineMode
func ToServiceRequest(partnerID int64, query url.Values) (*models.MonthRequest, error) {
	month, err := time.Parse(domain.MonthFormat, query.Get("month"))
	if err != nil {
		return nil, err
	}

	req := &models.MonthRequest{
		PartnerID:    partnerID,
		Month:        month,
		BaselineMode: query.Get("baselineMode"),
	}

	if raw := query.Get("capacityPerDay"); raw != "" {
		capacity, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.CapacityPerDay = &capacity
	}

	return req, nil
}
