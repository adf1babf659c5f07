package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotAlreadyReserved возвращается, когда на слот уже существует бронь (UNIQUE slot_id)
	ErrSlotAlreadyReserved = errors.New("reservation.repository: slot already reserved")

	// ErrSlotNotFound возвращается, когда бронь ссылается на несуществующий слот
	ErrSlotNotFound = errors.New("reservation.repository: slot not found")

	// ErrInvalidFilter возвращается, когда в фильтре не задан ни студент, ни инструктор
	ErrInvalidFilter = errors.New("reservation.repository: invalid filter")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
