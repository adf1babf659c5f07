package models

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// ListInWindowRequest запрос броней пользователя в окне [From, To)
type ListInWindowRequest struct {
	Username string
	From     time.Time
	To       time.Time
}

// ReservationResponse бронь вместе со временем слота
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

// ReservationListResponse список броней, отсортированный по началу слота
type ReservationListResponse struct {
	Role         string                `json:"role"`
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID,
		StudentID:      r.StudentID,
		AvailabilityID: r.SlotID,
		InstructorID:   r.InstructorID,
		UTCStartTime:   types.FormatDateTime(r.StartTime),
		UTCEndTime:     types.FormatDateTime(r.EndTime),
		Description:    r.Description,
		CreatedAt:      types.FormatDateTime(r.CreatedAt),
	}
}

// FromDomainReservationList конвертирует список броней
func FromDomainReservationList(role domain.Role, reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Role:         string(role),
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, FromDomainReservation(r))
	}
	return resp
}
