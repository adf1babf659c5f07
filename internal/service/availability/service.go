package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	userClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Service сервис чтения слотов доступности
type Service struct {
	slotRepo   SlotRepository
	userClient UserServiceClient
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, userClient UserServiceClient, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:   slotRepo,
		userClient: userClient,
		txManager:  txManager,
		logger:     logger,
	}
}

// ListSlots возвращает слоты инструктора, начинающиеся в окне [From, To)
// OnlyFree = true возвращает только слоты без брони
// Список читается одним запросом в транзакции только для чтения
func (s *Service) ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: instructor=%s, from=%s, to=%s, onlyFree=%t",
		req.InstructorUsername, types.FormatDateTime(req.From), types.FormatDateTime(req.To), req.OnlyFree)

	if strings.TrimSpace(req.InstructorUsername) == "" {
		return nil, fmt.Errorf("%w: instructor username is required", ErrInvalidInput)
	}

	window := domain.TimeRange{Start: req.From.UTC(), End: req.To.UTC()}
	if !window.IsValid() {
		s.logger.Warn("ListSlots: invalid window %s - %s", types.FormatDateTime(req.From), types.FormatDateTime(req.To))
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}

	instructorID, err := s.userClient.GetInstructorID(ctx, req.InstructorUsername)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) || errors.Is(err, userClient.ErrNotInstructor) {
			s.logger.Warn("ListSlots: instructor %s not found", req.InstructorUsername)
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("ListSlots: failed to get instructor %s: %v", req.InstructorUsername, err)
		return nil, fmt.Errorf("%w: ListSlots - get instructor: %v", ErrInternal, err)
	}

	var slots []*domain.Slot
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = s.slotRepo.ListByInstructor(txCtx, domain.SlotsFilter{
			InstructorID: instructorID,
			From:         window.Start,
			To:           window.End,
			OnlyFree:     req.OnlyFree,
		})
		return err
	})
	if err != nil {
		s.logger.Error("ListSlots: repository error for instructor=%d: %v", instructorID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListSlots: fetched %d slots for instructor=%d", len(slots), instructorID)
	return models.FromDomainSlotList(slots), nil
}
