package models

import "time"

// MonthRequest запрос помесячной сводки
type MonthRequest struct {
	PartnerID      int64
	Month          time.Time // любой момент месяца, используется год и месяц
	CapacityPerDay *int      // переопределяет дневную емкость партнера
	BaselineMode   string    // all | future | none, пусто = режим по умолчанию
}

// MonthResponse помесячная сводка
type MonthResponse struct {
	PartnerID    int64       `json:"partnerId"`
	Month        string      `json:"month"`
	BaselineMode string      `json:"baselineMode"`
	Capacity     int         `json:"capacityPerDay"`
	ScheduleSize int         `json:"scheduleSize"`
	Days         []DayCounts `json:"days"`
}

// DayCounts счетчики одного дня
type DayCounts struct {
	Date        string `json:"date"`
	Draft       int    `json:"draft"`
	Published   int    `json:"published"`
	Booked      int    `json:"booked"`
	Virtual     int    `json:"virtual"`
	OffSchedule int    `json:"offSchedule"` // слоты вне текущего шаблона, в счетчики выше не входят
	Capacity    int    `json:"capacity"`
	Remaining   int    `json:"remaining"`
}

// DayResponse расписание одного дня
type DayResponse struct {
	PartnerID int64      `json:"partnerId"`
	Date      string     `json:"date"`
	Slots     []SlotView `json:"slots"`
}

// SlotView слот дня (материализованный или виртуальный)
type SlotView struct {
	SlotID      *int64    `json:"slotId,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Status      string    `json:"status"`
	Virtual     bool      `json:"virtual"`
	OffSchedule bool      `json:"offSchedule,omitempty"`
}
