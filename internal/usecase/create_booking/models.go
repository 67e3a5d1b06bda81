package create_booking

import "time"

// Request модель запроса на бронирование слота
type Request struct {
	PartnerID        int64     // ID партнера
	StartTime        time.Time // Время начала слота
	ParticipantCount int       // Число участников, 1-3
	CustomerName     string    // Имя клиента
	CustomerEmail    string    // Email клиента (ключ поиска клиента)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                 int64     // ID бронирования
	SlotID             int64     // ID слота
	PartnerID          int64     // ID партнера
	CustomerID         int64     // ID клиента
	StartTime          time.Time // Время начала слота
	EndTime            time.Time // Время окончания слота
	ParticipantCount   int       // Число участников
	Status             string    // Статус бронирования (PENDING)
	TotalAmountCents   int64     // Итоговая стоимость
	DepositAmountCents int64     // Предоплата онлайн
	RestAmountCents    int64     // Остаток на месте
	CreatedAt          time.Time // Время создания
}
