package domain

import (
	"errors"
	"fmt"
	"time"
)

// SlotStatus represents the lifecycle status of a slot.
// A slot without a persisted row is implicitly DRAFT (virtual).
type SlotStatus string

const (
	SlotStatusDraft     SlotStatus = "DRAFT"
	SlotStatusPublished SlotStatus = "PUBLISHED"
	SlotStatusBooked    SlotStatus = "BOOKED"
)

// SlotTransition is an operation that moves a slot between statuses
type SlotTransition string

const (
	TransitionPublish   SlotTransition = "publish"
	TransitionUnpublish SlotTransition = "unpublish"
	TransitionReserve   SlotTransition = "reserve"
	TransitionRelease   SlotTransition = "release"
)

var (
	// ErrIllegalTransition is returned when a transition is not allowed from the current status
	ErrIllegalTransition = errors.New("domain: illegal slot transition")

	// ErrUnknownSlotStatus is returned for a status outside the closed set
	ErrUnknownSlotStatus = errors.New("domain: unknown slot status")
)

// ParseSlotStatus validates a raw status value
func ParseSlotStatus(s string) (SlotStatus, error) {
	status := SlotStatus(s)
	switch status {
	case SlotStatusDraft, SlotStatusPublished, SlotStatusBooked:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSlotStatus, s)
	}
}

// Next returns the status reached by applying t, or ErrIllegalTransition.
//
//	DRAFT     --publish-->   PUBLISHED
//	PUBLISHED --unpublish--> DRAFT
//	PUBLISHED --reserve-->   BOOKED
//	BOOKED    --release-->   PUBLISHED
func (s SlotStatus) Next(t SlotTransition) (SlotStatus, error) {
	switch s {
	case SlotStatusDraft:
		if t == TransitionPublish {
			return SlotStatusPublished, nil
		}
	case SlotStatusPublished:
		switch t {
		case TransitionUnpublish:
			return SlotStatusDraft, nil
		case TransitionReserve:
			return SlotStatusBooked, nil
		}
	case SlotStatusBooked:
		if t == TransitionRelease {
			return SlotStatusPublished, nil
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSlotStatus, string(s))
	}
	return "", fmt.Errorf("%w: %s from %s", ErrIllegalTransition, t, s)
}

// RequiredStatus returns the status a slot must have before t is applied
func (t SlotTransition) RequiredStatus() SlotStatus {
	switch t {
	case TransitionPublish:
		return SlotStatusDraft
	case TransitionUnpublish, TransitionReserve:
		return SlotStatusPublished
	case TransitionRelease:
		return SlotStatusBooked
	}
	return ""
}

// Slot is a bookable unit of time for one partner
type Slot struct {
	ID        int64
	PartnerID int64
	StartTime time.Time
	EndTime   time.Time
	Status    SlotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsVirtual returns true for a schedule slot that has no persisted row
func (s *Slot) IsVirtual() bool {
	return s.ID == 0
}

// IsBooked returns true if the slot holds an active booking
func (s *Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// IsDeletable returns true if the slot row may be physically removed
func (s *Slot) IsDeletable() bool {
	return s.Status != SlotStatusBooked
}
