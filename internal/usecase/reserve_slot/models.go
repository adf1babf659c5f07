package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// Request входные данные для бронирования слота
type Request struct {
	StudentUsername string
	SlotID          int64
	Description     string
}

// Response созданная бронь
type Response struct {
	ID           int64
	StudentID    int64
	SlotID       int64
	InstructorID int64
	StartTime    time.Time
	EndTime      time.Time
	Description  string
	CreatedAt    time.Time
}

func toResponse(reservation *domain.Reservation, slot *domain.Slot) *Response {
	return &Response{
		ID:           reservation.ID,
		StudentID:    reservation.StudentID,
		SlotID:       reservation.SlotID,
		InstructorID: slot.InstructorID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Description:  reservation.Description,
		CreatedAt:    reservation.CreatedAt,
	}
}
