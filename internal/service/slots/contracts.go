package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

// SlotRepository интерфейс хранилища слотов
type SlotRepository interface {
	InsertIfAbsent(ctx context.Context, slot *domain.Slot) (bool, error)
	GetByID(ctx context.Context, partnerID, id int64) (*domain.Slot, error)
	GetByStartTime(ctx context.Context, partnerID int64, start time.Time) (*domain.Slot, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.SlotStatus) (*domain.Slot, error)
	DeleteUnbooked(ctx context.Context, partnerID int64, ids []int64) ([]int64, error)
}

// PartnerRepository интерфейс получения партнера
type PartnerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Partner, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	RecordSlotTransition(transition string, n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
