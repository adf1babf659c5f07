package create_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.InstructorUsername) == "" {
		return fmt.Errorf("%w: instructor username is required", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет диапазон, длительность слота и число слотов в пакете
// Число слотов считается до нарезки диапазона
func validateRange(from, to time.Time, durationMinutes int, now time.Time, maxDurationMinutes, maxSlots int) error {
	if !from.Before(to) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}

	if durationMinutes < domain.MinSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidRange)
	}

	if durationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidRange, maxDurationMinutes)
	}

	if !from.After(now) {
		return fmt.Errorf("%w: from must be in the future", ErrInvalidRange)
	}

	count := to.Sub(from) / (time.Duration(durationMinutes) * time.Minute)
	if count > time.Duration(maxSlots) {
		return fmt.Errorf("%w: range yields %d slots, at most %d allowed", ErrInvalidRange, int64(count), maxSlots)
	}

	return nil
}
