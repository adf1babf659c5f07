package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TutorBooking/internal/infra/storage/reservation"
	userClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-TutorBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Service сервис чтения броней
type Service struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	var reservation *domain.Reservation
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservation, err = s.reservationRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrStoreUnavailable, err)
	}

	resp := models.FromDomainReservation(reservation)
	return &resp, nil
}

// ListInWindow возвращает брони пользователя, у которых слот начинается в окне [From, To)
// Студент получает свои брони, инструктор - брони на свои слоты,
// пользователь без обеих ролей - пустой список
func (s *Service) ListInWindow(ctx context.Context, req *models.ListInWindowRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListInWindow: user=%s, from=%s, to=%s",
		req.Username, types.FormatDateTime(req.From), types.FormatDateTime(req.To))

	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	window := domain.TimeRange{Start: req.From.UTC(), End: req.To.UTC()}
	if !window.IsValid() {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}

	user, err := s.userClient.GetUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("ListInWindow: user %s not found", req.Username)
			return nil, ErrUserNotFound
		}
		s.logger.Error("ListInWindow: failed to get user %s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: ListInWindow - get user: %v", ErrInternal, err)
	}

	filter := domain.ReservationsFilter{From: window.Start, To: window.End}

	role := user.Role()
	switch role {
	case domain.RoleStudent:
		filter.StudentID = user.StudentID
	case domain.RoleInstructor:
		filter.InstructorID = user.InstructorID
	default:
		s.logger.Info("ListInWindow: user %s has neither student nor instructor profile", req.Username)
		return models.FromDomainReservationList(role, nil), nil
	}

	var reservations []*domain.Reservation
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.ListWithFilter(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("ListInWindow: repository error for user=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: ListInWindow - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("ListInWindow: fetched %d reservations for %s %s", len(reservations), role, req.Username)
	return models.FromDomainReservationList(role, reservations), nil
}
