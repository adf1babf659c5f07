package create_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	slotRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/slot"
	userClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// UseCase use case генерации слотов доступности инструктора
type UseCase struct {
	slotRepo           SlotRepository
	userClient         UserServiceClient
	txManager          TransactionManager
	metrics            Metrics
	timeProvider       TimeProvider
	logger             Logger
	maxDurationMinutes int
	maxSlotsPerRequest int
}

// NewUseCase создает новый экземпляр use case
// Неположительные лимиты заменяются значениями по умолчанию из domain
func NewUseCase(
	slotRepo SlotRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	maxDurationMinutes int,
	maxSlotsPerRequest int,
	logger Logger,
) *UseCase {
	if maxDurationMinutes <= 0 {
		maxDurationMinutes = domain.DefaultMaxSlotDurationMinutes
	}
	if maxSlotsPerRequest <= 0 {
		maxSlotsPerRequest = domain.DefaultMaxSlotsPerRequest
	}
	return &UseCase{
		slotRepo:           slotRepo,
		userClient:         userClient,
		txManager:          txManager,
		metrics:            metrics,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
		maxDurationMinutes: maxDurationMinutes,
		maxSlotsPerRequest: maxSlotsPerRequest,
	}
}

// Execute выполняет use case генерации слотов
// Создает либо все слоты диапазона, либо ни одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: instructor=%s, from=%s, to=%s, duration=%d",
		req.InstructorUsername, req.From.UTC().Format(time.RFC3339), req.To.UTC().Format(time.RFC3339), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	// Слоты хранятся с точностью до минуты
	from, to := types.TruncateToMinute(req.From), types.TruncateToMinute(req.To)

	// 2. Проверка диапазона относительно текущего времени и лимита слотов
	if err := validateRange(from, to, req.DurationMinutes, uc.timeProvider.Now(), uc.maxDurationMinutes, uc.maxSlotsPerRequest); err != nil {
		uc.logger.Warn("CreateAvailability: range validation failed: %v", err)
		return nil, err
	}

	// 3. Делим диапазон на слоты, хвост отбрасывается
	ranges := splitRange(from, to, time.Duration(req.DurationMinutes)*time.Minute)
	if len(ranges) == 0 {
		uc.logger.Warn("CreateAvailability: range %s - %s is shorter than %d minutes", from, to, req.DurationMinutes)
		return nil, fmt.Errorf("%w: range is shorter than slot duration", ErrInvalidRange)
	}

	// 4. Получаем инструктора
	instructorID, err := uc.userClient.GetInstructorID(ctx, req.InstructorUsername)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) || errors.Is(err, userClient.ErrNotInstructor) {
			uc.logger.Warn("CreateAvailability: instructor %s not found", req.InstructorUsername)
			return nil, ErrInstructorNotFound
		}
		uc.logger.Error("CreateAvailability: failed to get instructor %s: %v", req.InstructorUsername, err)
		return nil, fmt.Errorf("%w: failed to get instructor: %v", ErrInternal, err)
	}

	slots := make([]*domain.Slot, 0, len(ranges))
	for _, r := range ranges {
		slots = append(slots, &domain.Slot{
			InstructorID: instructorID,
			StartTime:    r.Start,
			EndTime:      r.End,
		})
	}

	var created []*domain.Slot

	// 5. Проверка пересечений и пакетная вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Слоты пакета идут подряд, достаточно проверить весь диапазон
		overlap, err := uc.slotRepo.HasOverlap(txCtx, instructorID, ranges[0].Start, ranges[len(ranges)-1].End)
		if err != nil {
			uc.logger.Error("CreateAvailability: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrStoreUnavailable, err)
		}
		if overlap {
			return ErrSlotConflict
		}

		// 5.2. Один INSERT на весь пакет, ограничения БД ловят гонку с параллельной генерацией
		created, err = uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAvailability: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrStoreUnavailable, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncSlotConflict()
			uc.logger.Warn("CreateAvailability: instructor=%d already has slots in %s - %s", instructorID, from, to)
			return nil, ErrSlotConflict
		}
		if errors.Is(err, ErrStoreUnavailable) {
			return nil, err
		}
		uc.logger.Error("CreateAvailability: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrStoreUnavailable, err)
	}

	uc.metrics.AddSlotsCreated(len(created))
	uc.logger.Info("CreateAvailability: created %d slots for instructor=%d", len(created), instructorID)

	return toResponse(created), nil
}
