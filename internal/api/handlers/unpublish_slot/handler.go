package unpublish_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidSlotID    = "некорректный ID слота"
	msgSlotNotFound     = "слот не найден"
	msgConflict         = "снять с публикации можно только опубликованный слот"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/partners/{partnerId}/slots/{slotId}/unpublish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	partnerID, err := strconv.ParseInt(vars["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/{id}/unpublish - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/{id}/unpublish - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Unpublish(r.Context(), partnerID, slotID); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound), errors.Is(err, slots.ErrPartnerNotFound):
			h.logger.Warn("POST /partners/{id}/slots/{id}/unpublish - Slot not found: partner_id=%d, slot_id=%d", partnerID, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("POST /partners/{id}/slots/{id}/unpublish - Conflict: partner_id=%d, slot_id=%d", partnerID, slotID)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /partners/{id}/slots/{id}/unpublish - Failed to unpublish: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/slots/{id}/unpublish - Slot unpublished: partner_id=%d, slot_id=%d", partnerID, slotID)
	w.WriteHeader(http.StatusNoContent)
}
