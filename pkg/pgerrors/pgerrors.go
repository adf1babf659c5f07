package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL (SQLSTATE)
const (
	CodeUniqueViolation     pq.ErrorCode = "23505"
	CodeExclusionViolation  pq.ErrorCode = "23P01"
	CodeForeignKeyViolation pq.ErrorCode = "23503"
)

// Code возвращает SQLSTATE ошибки драйвера, если это *pq.Error
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

// Constraint возвращает имя нарушенного ограничения
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation нарушение UNIQUE
func IsUniqueViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeUniqueViolation
}

// IsExclusionViolation нарушение EXCLUDE ограничения
func IsExclusionViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeExclusionViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	code, ok := Code(err)
	return ok && code == CodeForeignKeyViolation
}
