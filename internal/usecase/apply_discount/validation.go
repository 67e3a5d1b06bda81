package apply_discount

import (
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

const maxCodeLength = 64

// validateRequest валидирует входные данные и возвращает нормализованный код
func validateRequest(req *Request) (string, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Code == nil {
		return "", nil
	}

	code := domain.NormalizeCode(*req.Code)
	if len(code) > maxCodeLength {
		return "", fmt.Errorf("%w: code must be at most %d characters", ErrInvalidInput, maxCodeLength)
	}

	return code, nil
}
