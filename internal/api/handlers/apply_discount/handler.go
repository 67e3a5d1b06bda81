package apply_discount

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	applyDiscount "github.com/m04kA/SMC-SlotBookingService/internal/usecase/apply_discount"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgPricingLocked      = "стоимость бронирования уже зафиксирована"
)

// сообщения для пользователя по причине отказа в промокоде
var rejectMessages = map[domain.DiscountRejectReason]string{
	domain.RejectNotFound:     "промокод не найден",
	domain.RejectInactive:     "промокод неактивен",
	domain.RejectNotYetValid:  "промокод еще не действует",
	domain.RejectExpired:      "срок действия промокода истек",
	domain.RejectExhausted:    "лимит использований промокода исчерпан",
	domain.RejectWrongPartner: "промокод не действует у этого партнера",
}

type Handler struct {
	useCase ApplyDiscountUseCase
	logger  Logger
}

func NewHandler(useCase ApplyDiscountUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/discount
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/discount - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req ApplyDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/discount - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &applyDiscount.Request{
		BookingID: bookingID,
		Code:      req.Code,
	})
	if err != nil {
		var rejected *applyDiscount.CodeRejectedError
		switch {
		case errors.As(err, &rejected):
			h.logger.Warn("POST /bookings/{id}/discount - Code rejected: booking_id=%d, reason=%s", bookingID, rejected.Reason)
			handlers.RespondErrorWithReason(w, http.StatusUnprocessableEntity, rejectMessages[rejected.Reason], string(rejected.Reason))

		case errors.Is(err, applyDiscount.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/discount - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, applyDiscount.ErrPricingLocked):
			h.logger.Warn("POST /bookings/{id}/discount - Pricing locked: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPricingLocked)

		case errors.Is(err, applyDiscount.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/discount - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/discount - Failed to apply discount: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/discount - Booking repriced: booking_id=%d, total=%d, discount=%d",
		bookingID, result.TotalAmountCents, result.DiscountAmountCents)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
