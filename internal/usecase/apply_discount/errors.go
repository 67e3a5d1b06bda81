package apply_discount

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("apply_discount: booking not found")

	// ErrPricingLocked возвращается, когда бронирование уже оплачено или отменено
	ErrPricingLocked = errors.New("apply_discount: booking pricing is locked")

	// ErrInvalidCode возвращается, когда промокод не может быть применен
	ErrInvalidCode = errors.New("apply_discount: invalid discount code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_discount: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_discount: internal error")
)

// CodeRejectedError уточняет причину отказа в промокоде.
// errors.Is(err, ErrInvalidCode) для нее истинно.
type CodeRejectedError struct {
	Code   string
	Reason domain.DiscountRejectReason
}

func (e *CodeRejectedError) Error() string {
	return fmt.Sprintf("%v: code %q rejected: %s", ErrInvalidCode, e.Code, e.Reason)
}

func (e *CodeRejectedError) Unwrap() error {
	return ErrInvalidCode
}

func rejected(code string, reason domain.DiscountRejectReason) error {
	return &CodeRejectedError{Code: code, Reason: reason}
}
