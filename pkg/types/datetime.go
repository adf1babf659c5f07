package types

import (
	"fmt"
	"time"
)

// DateTimeFormat формат моментов времени в API: yyyy-MM-dd HH:mm (UTC, точность до минуты)
const DateTimeFormat = "2006-01-02 15:04"

// ParseDateTime разбирает строку в формате DateTimeFormat как момент в UTC
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q, expected yyyy-MM-dd HH:mm: %w", s, err)
	}
	return t, nil
}

// FormatDateTime форматирует момент времени в UTC без секунд и зоны
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeFormat)
}

// TruncateToMinute отбрасывает секунды и приводит момент к UTC
func TruncateToMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}
