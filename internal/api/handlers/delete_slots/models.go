package delete_slots

// DeleteSlotsRequest HTTP request model
type DeleteSlotsRequest struct {
	SlotIDs []int64 `json:"slotIds"`
}
