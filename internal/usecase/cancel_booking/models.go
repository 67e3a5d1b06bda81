package cancel_booking

import "time"

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID      int64     // ID бронирования
	SlotID         int64     // ID освобожденного слота
	Status         string    // Статус бронирования (CANCELLED)
	RefundEligible bool      // До начала сеанса не меньше окна возврата
	CancelledAt    time.Time // Время отмены
}
