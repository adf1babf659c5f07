package availability

import (
	"context"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByInstructor(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetInstructorID(ctx context.Context, username string) (int64, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
