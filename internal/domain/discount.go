package domain

import (
	"strings"
	"time"
)

// DiscountType determines how a discount amount is computed
type DiscountType string

const (
	DiscountTypePercent DiscountType = "PERCENT"
	DiscountTypeFixed   DiscountType = "FIXED"
)

// DiscountRejectReason explains why a code cannot be applied
type DiscountRejectReason string

const (
	RejectNotFound     DiscountRejectReason = "not_found"
	RejectInactive     DiscountRejectReason = "inactive"
	RejectNotYetValid  DiscountRejectReason = "not_yet_valid"
	RejectExpired      DiscountRejectReason = "expired"
	RejectExhausted    DiscountRejectReason = "exhausted"
	RejectWrongPartner DiscountRejectReason = "wrong_partner"
)

// DiscountCode is a promo code, either partner-specific or global (PartnerID == nil)
type DiscountCode struct {
	ID             int64
	PartnerID      *int64
	Code           string
	Type           DiscountType
	Percent        int   // 1–100, PERCENT only
	AmountCents    int64 // FIXED only
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	MaxRedemptions *int
	RedeemedCount  int
	Active         bool
}

// NormalizeCode returns the lookup key for a code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsGlobal returns true if the code applies to every partner
func (d *DiscountCode) IsGlobal() bool {
	return d.PartnerID == nil
}

// AppliesTo returns true if the code may be used for the partner
func (d *DiscountCode) AppliesTo(partnerID int64) bool {
	return d.PartnerID == nil || *d.PartnerID == partnerID
}

// CheckUsable runs validity checks in order, stopping on the first failure.
// Returns an empty reason when the code is usable at now.
func (d *DiscountCode) CheckUsable(now time.Time) DiscountRejectReason {
	if !d.Active {
		return RejectInactive
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return RejectNotYetValid
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return RejectExpired
	}
	if d.MaxRedemptions != nil && d.RedeemedCount >= *d.MaxRedemptions {
		return RejectExhausted
	}
	return ""
}
