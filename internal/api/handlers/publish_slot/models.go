package publish_slot

// PublishSlotRequest HTTP request model
type PublishSlotRequest struct {
	StartTime string `json:"startTime"` // RFC3339, "2026-10-20T18:00:00+02:00"
}
