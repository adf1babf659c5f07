package userservice

import "github.com/m04kA/SMC-TutorBooking/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	StudentID    *int64 `json:"studentId,omitempty"`
	InstructorID *int64 `json:"instructorId,omitempty"`
}

// Role определяет роль, в которой пользователь запрашивает брони
// Профиль студента имеет приоритет
func (u *User) Role() domain.Role {
	switch {
	case u.StudentID != nil:
		return domain.RoleStudent
	case u.InstructorID != nil:
		return domain.RoleInstructor
	default:
		return domain.RoleNone
	}
}
