package create_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error)
	HasOverlap(ctx context.Context, instructorID int64, start, end time.Time) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetInstructorID(ctx context.Context, username string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик генерации слотов
type Metrics interface {
	AddSlotsCreated(n int)
	IncSlotConflict()
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
	return time.Now().UTC()
}
