package create_availability

import (
	createAvailability "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_availability"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	FromUTC         string `json:"fromUtc"` // "2030-01-15 09:00"
	ToUTC           string `json:"toUtc"`   // "2030-01-15 12:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID           int64  `json:"id"`
	InstructorID int64  `json:"instructorId"`
	UTCStartTime string `json:"utcStartTime"`
	UTCEndTime   string `json:"utcEndTime"`
	Version      int    `json:"version"`
	CreatedAt    string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAvailabilityRequest) ToUseCaseRequest(username string) (*createAvailability.Request, error) {
	from, err := types.ParseDateTime(r.FromUTC)
	if err != nil {
		return nil, err
	}

	to, err := types.ParseDateTime(r.ToUTC)
	if err != nil {
		return nil, err
	}

	return &createAvailability.Request{
		InstructorUsername: username,
		From:               from,
		To:                 to,
		DurationMinutes:    r.DurationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAvailability.Response) []SlotResponse {
	result := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		result = append(result, SlotResponse{
			ID:           s.ID,
			InstructorID: s.InstructorID,
			UTCStartTime: types.FormatDateTime(s.StartTime),
			UTCEndTime:   types.FormatDateTime(s.EndTime),
			Version:      s.Version,
			CreatedAt:    types.FormatDateTime(s.CreatedAt),
		})
	}
	return result
}
