package reserve_slot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxDescriptionLength int) error {
	if strings.TrimSpace(req.StudentUsername) == "" {
		return fmt.Errorf("%w: student username is required", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidInput, maxDescriptionLength)
	}

	return nil
}
