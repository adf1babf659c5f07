package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotConflict возвращается, когда новые слоты пересекаются с существующими
	ErrSlotConflict = errors.New("slot.repository: slot overlaps existing slot")

	// ErrVersionConflict возвращается, когда версия слота изменилась после чтения
	// или к слоту уже привязана бронь
	ErrVersionConflict = errors.New("slot.repository: slot version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
