package models

import "time"

// Breakdown разбивка стоимости в центах. Deposit + Rest = Total всегда.
type Breakdown struct {
	TotalCents   int64 `json:"totalCents"`
	DepositCents int64 `json:"depositCents"`
	RestCents    int64 `json:"restCents"`
}

// QuoteRequest запрос расчета стоимости
type QuoteRequest struct {
	PartnerID        int64
	ParticipantCount int
	StartTime        time.Time
}

// QuoteResponse результат расчета стоимости
type QuoteResponse struct {
	PartnerID        int64     `json:"partnerId"`
	ParticipantCount int       `json:"participantCount"`
	StartTime        time.Time `json:"startTime"`
	Breakdown
}
