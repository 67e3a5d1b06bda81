package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartTime        string `json:"startTime"` // RFC3339, "2026-10-20T18:00:00+02:00"
	ParticipantCount int    `json:"participantCount"`
	CustomerName     string `json:"customerName"`
	CustomerEmail    string `json:"customerEmail"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                 int64  `json:"id"`
	SlotID             int64  `json:"slotId"`
	PartnerID          int64  `json:"partnerId"`
	CustomerID         int64  `json:"customerId"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	ParticipantCount   int    `json:"participantCount"`
	Status             string `json:"status"`
	TotalAmountCents   int64  `json:"totalAmountCents"`
	DepositAmountCents int64  `json:"depositAmountCents"`
	RestAmountCents    int64  `json:"restAmountCents"`
	CreatedAt          string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(partnerID int64) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		PartnerID:        partnerID,
		StartTime:        startTime,
		ParticipantCount: r.ParticipantCount,
		CustomerName:     r.CustomerName,
		CustomerEmail:    r.CustomerEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		SlotID:             resp.SlotID,
		PartnerID:          resp.PartnerID,
		CustomerID:         resp.CustomerID,
		StartTime:          resp.StartTime.Format(time.RFC3339),
		EndTime:            resp.EndTime.Format(time.RFC3339),
		ParticipantCount:   resp.ParticipantCount,
		Status:             resp.Status,
		TotalAmountCents:   resp.TotalAmountCents,
		DepositAmountCents: resp.DepositAmountCents,
		RestAmountCents:    resp.RestAmountCents,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
}
