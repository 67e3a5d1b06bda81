package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/availability"
)

const (
	msgInvalidPartnerID = "некорректный ID партнера"
	msgInvalidQuery     = "некорректные параметры: month ожидается в формате YYYY-MM, capacityPerDay числом"
	msgPartnerNotFound  = "партнер не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/partners/{partnerId}/availability/month
// Query params: month (required, YYYY-MM), capacityPerDay, baselineMode (all | future | none)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /partners/{id}/availability/month - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	serviceReq, err := ToServiceRequest(partnerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /partners/{id}/availability/month - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.MonthCounts(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPartnerNotFound):
			h.logger.Warn("GET /partners/{id}/availability/month - Partner not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /partners/{id}/availability/month - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /partners/{id}/availability/month - Failed to count slots: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /partners/{id}/availability/month - Counts retrieved: partner_id=%d, month=%s, days=%d",
		partnerID, result.Month, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
