package create_booking

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("create_booking: partner not found")

	// ErrSlotNotOpen возвращается, когда слот не опубликован (нет строки или DRAFT)
	ErrSlotNotOpen = errors.New("create_booking: slot is not open for booking")

	// ErrSlotAlreadyBooked возвращается, когда слот уже забронирован (в том числе при гонке)
	ErrSlotAlreadyBooked = errors.New("create_booking: slot is already booked")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
