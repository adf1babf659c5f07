package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/slot"
	userClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-TutorBooking/pkg/metrics"
	"github.com/m04kA/SMC-TutorBooking/pkg/ptr"
)

// UseCase use case бронирования слота студентом
// Корректность при гонке обеспечивается условным UPDATE по версии слота,
// блокировки между чтением и записью не держатся
type UseCase struct {
	slotRepo             SlotRepository
	reservationRepo      ReservationRepository
	userClient           UserServiceClient
	txManager            TransactionManager
	metrics              Metrics
	timeProvider         TimeProvider
	logger               Logger
	maxDescriptionLength int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	maxDescriptionLength int,
	logger Logger,
) *UseCase {
	if maxDescriptionLength <= 0 {
		maxDescriptionLength = domain.DefaultMaxDescriptionLength
	}
	return &UseCase{
		slotRepo:             slotRepo,
		reservationRepo:      reservationRepo,
		userClient:           userClient,
		txManager:            txManager,
		metrics:              metrics,
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
		maxDescriptionLength: maxDescriptionLength,
	}
}

// Execute выполняет use case бронирования слота
// Проигравший гонку запрос получает ErrSlotUnavailable, повтор не выполняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: student=%s, slot=%d", req.StudentUsername, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxDescriptionLength); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем студента
	studentID, err := uc.userClient.GetStudentID(ctx, req.StudentUsername)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) || errors.Is(err, userClient.ErrNotStudent) {
			uc.logger.Warn("ReserveSlot: student %s not found", req.StudentUsername)
			return nil, ErrStudentNotFound
		}
		uc.logger.Error("ReserveSlot: failed to get student %s: %v", req.StudentUsername, err)
		return nil, fmt.Errorf("%w: failed to get student: %v", ErrInternal, err)
	}

	// 3. Читаем слот, запоминаем версию
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.metrics.IncReservationAttempt(metrics.ReservationResultNotFound)
			uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.metrics.IncReservationAttempt(metrics.ReservationResultError)
		uc.logger.Error("ReserveSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrStoreUnavailable, err)
	}

	// 4. Быстрый отказ без записи
	if slot.IsReserved() {
		uc.metrics.IncReservationAttempt(metrics.ReservationResultAlreadyReserved)
		uc.logger.Warn("ReserveSlot: slot id=%d already reserved by reservation id=%d", slot.ID, ptr.Value(slot.ReservationID))
		return nil, ErrSlotUnavailable
	}
	if slot.HasStarted(uc.timeProvider.Now()) {
		uc.metrics.IncReservationAttempt(metrics.ReservationResultSlotStarted)
		uc.logger.Warn("ReserveSlot: slot id=%d already started at %s", slot.ID, slot.StartTime)
		return nil, ErrSlotUnavailable
	}

	var created *domain.Reservation

	// 5. Бронь и условное обновление слота в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. UNIQUE(slot_id) не даст создать вторую бронь на слот
		reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			StudentID:   studentID,
			SlotID:      slot.ID,
			Description: req.Description,
		})
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotAlreadyReserved):
				return errLostRace
			case errors.Is(err, reservationRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to create reservation: %v", ErrStoreUnavailable, err)
		}

		// 5.2. Compare-and-swap по версии, прочитанной на шаге 3
		if err := uc.slotRepo.AttachReservation(txCtx, slot.ID, slot.Version, reservation.ID); err != nil {
			if errors.Is(err, slotRepo.ErrVersionConflict) {
				return errLostRace
			}
			return fmt.Errorf("%w: failed to attach reservation: %v", ErrStoreUnavailable, err)
		}

		created = reservation
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, errLostRace):
			uc.metrics.IncReservationAttempt(metrics.ReservationResultVersionConflict)
			uc.logger.Warn("ReserveSlot: slot id=%d version=%d changed concurrently", slot.ID, slot.Version)
			return nil, ErrSlotUnavailable
		case errors.Is(err, ErrSlotNotFound):
			uc.metrics.IncReservationAttempt(metrics.ReservationResultNotFound)
			return nil, ErrSlotNotFound
		case errors.Is(err, ErrStoreUnavailable):
			uc.metrics.IncReservationAttempt(metrics.ReservationResultError)
			uc.logger.Error("ReserveSlot: %v", err)
			return nil, err
		}
		uc.metrics.IncReservationAttempt(metrics.ReservationResultError)
		uc.logger.Error("ReserveSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrStoreUnavailable, err)
	}

	uc.metrics.IncReservationAttempt(metrics.ReservationResultSuccess)
	uc.logger.Info("ReserveSlot: created reservation id=%d for slot id=%d", created.ID, slot.ID)

	return toResponse(created, slot), nil
}
