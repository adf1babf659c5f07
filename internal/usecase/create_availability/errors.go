package create_availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда диапазон или длительность слота некорректны
	ErrInvalidRange = errors.New("create_availability: invalid range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_availability: invalid input data")

	// ErrSlotConflict возвращается, когда новые слоты пересекаются с существующими
	ErrSlotConflict = errors.New("create_availability: slots overlap existing availability")

	// ErrInstructorNotFound возвращается, когда инструктор не найден
	ErrInstructorNotFound = errors.New("create_availability: instructor not found")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("create_availability: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_availability: internal error")
)
