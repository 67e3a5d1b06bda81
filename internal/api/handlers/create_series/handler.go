package create_series

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
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle POST /api/v1/partners/{partnerId}/slots/series
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/series - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners/{id}/slots/series - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(partnerID)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/slots/series - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateSeries(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrPartnerNotFound):
			h.logger.Warn("POST /partners/{id}/slots/series - Partner not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /partners/{id}/slots/series - Invalid input: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /partners/{id}/slots/series - Failed to create series: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/slots/series - Series created: partner_id=%d, created=%d, skipped=%d",
		partnerID, result.Created, result.SkippedDuplicates)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
