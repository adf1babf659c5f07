package models

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// ListSlotsRequest запрос слотов инструктора в окне [From, To)
type ListSlotsRequest struct {
	InstructorUsername string
	From               time.Time
	To                 time.Time
	OnlyFree           bool
}

// SlotResponse слот доступности
type SlotResponse struct {
	ID              int64  `json:"id"`
	InstructorID    int64  `json:"instructorId"`
	UTCStartTime    string `json:"utcStartTime"` // "2030-01-15 09:00"
	UTCEndTime      string `json:"utcEndTime"`   // "2030-01-15 09:30"
	DurationMinutes int    `json:"durationMinutes"`
	Version         int    `json:"version"`
	Reserved        bool   `json:"reserved"`
	ReservationID   *int64 `json:"reservationId,omitempty"`
}

// SlotListResponse список слотов, отсортированный по началу и ID
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		InstructorID:    s.InstructorID,
		UTCStartTime:    types.FormatDateTime(s.StartTime),
		UTCEndTime:      types.FormatDateTime(s.EndTime),
		DurationMinutes: int(s.Duration() / time.Minute),
		Version:         s.Version,
		Reserved:        s.IsReserved(),
		ReservationID:   s.ReservationID,
	}
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(s))
	}
	return resp
}
