package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Partner is the service provider offering sessions. Read-only to the booking core.
type Partner struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Price1PaxCents  int64           `json:"price1PaxCents"`  // price for exactly one participant
	Price2PlusCents int64           `json:"price2PlusCents"` // price per participant for two or more
	FeePercent      decimal.Decimal `json:"feePercent"`      // deposit share of the total, 0–100
	DailyCapacity   int             `json:"dailyCapacity"`
	Timezone        string          `json:"timezone"`
}

// Location returns the partner's time zone, falling back to DefaultTimezone
func (p *Partner) Location() (*time.Location, error) {
	tz := p.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("partner %d: invalid timezone %q: %w", p.ID, tz, err)
	}
	return loc, nil
}

// Capacity returns the configured daily capacity baseline
func (p *Partner) Capacity() int {
	if p.DailyCapacity <= 0 {
		return DefaultDailyCapacity
	}
	return p.DailyCapacity
}
