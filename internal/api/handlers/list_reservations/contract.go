package list_reservations

import (
	"context"

	"github.com/m04kA/SMC-TutorBooking/internal/service/reservations/models"
)

type ReservationsService interface {
	ListInWindow(ctx context.Context, req *models.ListInWindowRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
