package domain

import "time"

// Slot represents a fixed time interval an instructor has made available for booking
// Interval is half-open: [StartTime, EndTime)
type Slot struct {
	ID            int64
	InstructorID  int64
	StartTime     time.Time
	EndTime       time.Time
	Version       int    // счетчик оптимистичной блокировки, растет при каждом изменении
	ReservationID *int64 // обратная ссылка на бронь (nil - слот свободен)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsReserved returns true if a reservation is attached to the slot
func (s *Slot) IsReserved() bool {
	return s.ReservationID != nil
}

// HasStarted returns true if the slot start is not after now
func (s *Slot) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}

// Overlaps returns true if the slot interval intersects [start, end)
func (s *Slot) Overlaps(start, end time.Time) bool {
	return TimeRange{Start: s.StartTime, End: s.EndTime}.Overlaps(TimeRange{Start: start, End: end})
}

// Duration returns the slot length
func (s *Slot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// TimeRange half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if Start < End
func (r TimeRange) IsValid() bool {
	return r.Start.Before(r.End)
}

// Overlaps returns true if both half-open intervals share at least one instant
// Adjacent intervals ([9:00,9:30) и [9:30,10:00)) не пересекаются
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains returns true if t lies in [Start, End)
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// SlotsFilter фильтр для выборки слотов инструктора
type SlotsFilter struct {
	InstructorID int64     // Обязательный параметр
	From         time.Time // Начало окна (включительно, по start_time)
	To           time.Time // Конец окна (не включительно)
	OnlyFree     bool      // Только слоты без брони
}
