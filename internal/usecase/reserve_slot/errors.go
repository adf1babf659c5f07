package reserve_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotUnavailable возвращается, когда слот уже забронирован, уже начался
	// или параллельная бронь выиграла гонку
	ErrSlotUnavailable = errors.New("reserve_slot: slot is not available")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("reserve_slot: student not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrStoreUnavailable возвращается при ошибках хранилища
	ErrStoreUnavailable = errors.New("reserve_slot: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")

	// errLostRace внутренняя ошибка: версия слота изменилась между чтением и записью
	errLostRace = errors.New("reserve_slot: slot version changed")
)
