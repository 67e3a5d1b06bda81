package apply_discount

// Request модель запроса на применение или снятие промокода
type Request struct {
	BookingID int64   // ID бронирования
	Code      *string // Промокод; nil или пустая строка снимает скидку
}

// Response модель ответа с пересчитанной стоимостью
type Response struct {
	BookingID           int64  // ID бронирования
	DiscountCode        string // Примененный промокод (пусто, если скидки нет)
	DiscountCodeID      *int64 // ID промокода
	DiscountAmountCents int64  // Размер скидки
	TotalAmountCents    int64  // Итоговая стоимость
	DepositAmountCents  int64  // Предоплата онлайн
	RestAmountCents     int64  // Остаток на месте
}
