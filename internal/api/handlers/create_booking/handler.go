package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidPartnerID   = "некорректный ID партнера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректное время начала, ожидается RFC3339"
	msgPartnerNotFound    = "партнер не найден"
	msgSlotNotOpen        = "слот не открыт для бронирования"
	msgSlotAlreadyBooked  = "слот уже забронирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/partners/{partnerId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/bookings - Invalid partner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartnerID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partners/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(partnerID)
	if err != nil {
		h.logger.Warn("POST /partners/{id}/bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrPartnerNotFound):
			h.logger.Warn("POST /partners/{id}/bookings - Partner not found: partner_id=%d", partnerID)
			handlers.RespondNotFound(w, msgPartnerNotFound)

		case errors.Is(err, createBooking.ErrSlotNotOpen):
			h.logger.Warn("POST /partners/{id}/bookings - Slot not open: partner_id=%d, start=%s", partnerID, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotOpen)

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /partners/{id}/bookings - Slot already booked: partner_id=%d, start=%s", partnerID, req.StartTime)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /partners/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /partners/{id}/bookings - Failed to create booking: partner_id=%d, error=%v", partnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partners/{id}/bookings - Booking created successfully: booking_id=%d, slot_id=%d",
		result.ID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
