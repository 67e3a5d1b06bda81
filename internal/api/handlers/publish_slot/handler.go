package publish_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC3339"
	msgPartnerNotFound    = "партнер не найден"
	msgSlotNotFound       = "слот не найден в расписании партнера"
	msgConflict           = "слот уже опубликован или забронирован"
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

// Handle POST /api/v1/partners/{partnerId}/slots/publish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/publish - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req PublishSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners/{id}/slots/publish - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/publish - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	slot, err := h.service.Publish(r.Context(), partnerID, startTime)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrPartnerNotFound):
			h.logger.Warn("POST /partners/{id}/slots/publish - Partner not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("POST /partners/{id}/slots/publish - Slot not in schedule: partner_id=%d, start=%s",
				partnerID, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrConflict):
			h.logger.Warn("POST /partners/{id}/slots/publish - Conflict: partner_id=%d, start=%s", partnerID, req.StartTime)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /partners/{id}/slots/publish - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /partners/{id}/slots/publish - Failed to publish slot: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/slots/publish - Slot published: partner_id=%d, slot_id=%d", partnerID, slot.ID)
	handlers.RespondJSON(w, http.StatusOK, slot)
}
