package delete_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/slots"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPartnerNotFound    = "партнер не найден"
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

// Handle POST /api/v1/partners/{partnerId}/slots/delete
// Забронированные и чужие слоты не удаляются и возвращаются в rejectedIds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/delete - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req DeleteSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners/{id}/slots/delete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.DeleteMany(r.Context(), partnerID, req.SlotIDs)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrPartnerNotFound):
			h.logger.Warn("POST /partners/{id}/slots/delete - Partner not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /partners/{id}/slots/delete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /partners/{id}/slots/delete - Failed to delete slots: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/slots/delete - Slots deleted: partner_id=%d, deleted=%d, rejected=%d",
		partnerID, result.Deleted, result.Rejected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
