package list_availabilities

import (
	"context"

	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
)

type AvailabilityService interface {
	ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
