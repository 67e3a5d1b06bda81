package models

import (
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CreateSeriesRequest запрос на массовое создание слотов
type CreateSeriesRequest struct {
	PartnerID int64
	StartDate time.Time          // первая дата диапазона (включительно), календарная дата партнера
	EndDate   time.Time          // последняя дата диапазона (включительно)
	Weekdays  []time.Weekday     // 0 = воскресенье
	Times     []types.TimeString // время начала в часовом поясе партнера
	Publish   bool               // создавать сразу PUBLISHED
}

// CreateSeriesResponse результат массового создания
type CreateSeriesResponse struct {
	Created           int `json:"created"`
	SkippedDuplicates int `json:"skippedDuplicates"`
}

// DeleteSlotsResponse результат массового удаления
type DeleteSlotsResponse struct {
	Deleted     int     `json:"deleted"`
	Rejected    int     `json:"rejected"`
	RejectedIDs []int64 `json:"rejectedIds"`
}

// SlotResponse слот в ответе API
type SlotResponse struct {
	ID        int64     `json:"id"`
	PartnerID int64     `json:"partnerId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// FromDomainSlot конвертирует доменную модель в ответ
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:        s.ID,
		PartnerID: s.PartnerID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
	}
}
