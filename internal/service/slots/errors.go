package slots

import "errors"

var (
	// ErrPartnerNotFound возвращается, когда партнер не найден
	ErrPartnerNotFound = errors.New("slots: partner not found")

	// ErrSlotNotFound возвращается, когда слот не найден или время вне расписания партнера
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrConflict возвращается, когда переход недопустим из текущего статуса слота
	ErrConflict = errors.New("slots: slot status conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
