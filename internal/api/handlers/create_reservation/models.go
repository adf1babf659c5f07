package create_reservation

import (
	reserveSlot "github.com/m04kA/SMC-TutorBooking/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	AvailabilityID int64  `json:"availabilityId"`
	Description    string `json:"description"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"studentId"`
	AvailabilityID int64  `json:"availabilityId"`
	InstructorID   int64  `json:"instructorId"`
	UTCStartTime   string `json:"utcStartTime"`
	UTCEndTime     string `json:"utcEndTime"`
	Description    string `json:"description"`
	CreatedAt      string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(username string) *reserveSlot.Request {
	return &reserveSlot.Request{
		StudentUsername: username,
		SlotID:          r.AvailabilityID,
		Description:     r.Description,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		StudentID:      resp.StudentID,
		AvailabilityID: resp.SlotID,
		InstructorID:   resp.InstructorID,
		UTCStartTime:   types.FormatDateTime(resp.StartTime),
		UTCEndTime:     types.FormatDateTime(resp.EndTime),
		Description:    resp.Description,
		CreatedAt:      types.FormatDateTime(resp.CreatedAt),
	}
}
