package domain

import "time"

// Reservation represents a student's claim on exactly one slot
type Reservation struct {
	ID          int64
	StudentID   int64
	SlotID      int64
	Description string
	CreatedAt   time.Time

	// Read projection of the reserved slot (filled by JOIN, never written)
	InstructorID int64
	StartTime    time.Time
	EndTime      time.Time
}

// ReservationsFilter фильтр для выборки бронирований в окне
// Должен быть задан ровно один из StudentID / InstructorID
type ReservationsFilter struct {
	StudentID    *int64    // Брони студента
	InstructorID *int64    // Брони на слоты инструктора
	From         time.Time // Начало окна (включительно, по start_time слота)
	To           time.Time // Конец окна (не включительно)
}

// Role тип принципала, запрашивающего брони
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleNone       Role = "none"
)
