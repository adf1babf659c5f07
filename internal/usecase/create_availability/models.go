package create_availability

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// Request входные данные для генерации слотов
type Request struct {
	InstructorUsername string
	From               time.Time
	To                 time.Time
	DurationMinutes    int
}

// Response созданные слоты в порядке возрастания start_time
type Response struct {
	Slots []Slot
}

// Slot созданный слот доступности
type Slot struct {
	ID           int64
	InstructorID int64
	StartTime    time.Time
	EndTime      time.Time
	Version      int
	CreatedAt    time.Time
}

func toResponse(slots []*domain.Slot) *Response {
	resp := &Response{Slots: make([]Slot, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			ID:           s.ID,
			InstructorID: s.InstructorID,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Version:      s.Version,
			CreatedAt:    s.CreatedAt,
		})
	}
	return resp
}
