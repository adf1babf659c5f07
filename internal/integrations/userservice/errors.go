package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrNotStudent возвращается, когда у пользователя нет профиля студента
	ErrNotStudent = errors.New("userservice client: user is not a student")

	// ErrNotInstructor возвращается, когда у пользователя нет профиля инструктора
	ErrNotInstructor = errors.New("userservice client: user is not an instructor")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrUnavailable возвращается при недоступности UserService (сеть, таймаут, 5xx)
	ErrUnavailable = errors.New("userservice client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
