package domain

// Default configuration values
const (
	DefaultMaxSlotDurationMinutes = 120
	DefaultMaxDescriptionLength   = 500
	DefaultMaxSlotsPerRequest     = 1000
)

// Business validation constants
const (
	MinSlotDurationMinutes = 1

	// MaxSlotsPerRequestLimit верхняя граница настройки max_slots_per_request:
	// пакет вставляется одним INSERT по 3 параметра на слот, PostgreSQL принимает до 65535 параметров
	MaxSlotsPerRequestLimit = 20000
)
