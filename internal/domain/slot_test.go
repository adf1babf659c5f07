package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 15, hour, minute, 0, 0, time.UTC)
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := TimeRange{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{name: "inside", other: TimeRange{Start: at(9, 15), End: at(9, 45)}, want: true},
		{name: "covers", other: TimeRange{Start: at(8, 0), End: at(11, 0)}, want: true},
		{name: "left edge overlap", other: TimeRange{Start: at(8, 30), End: at(9, 1)}, want: true},
		{name: "adjacent before", other: TimeRange{Start: at(8, 0), End: at(9, 0)}, want: false},
		{name: "adjacent after", other: TimeRange{Start: at(10, 0), End: at(11, 0)}, want: false},
		{name: "disjoint", other: TimeRange{Start: at(12, 0), End: at(13, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	r := TimeRange{Start: at(9, 0), End: at(10, 0)}

	assert.True(t, r.Contains(at(9, 0)))
	assert.True(t, r.Contains(at(9, 59)))
	assert.False(t, r.Contains(at(10, 0)))
	assert.False(t, r.Contains(at(8, 59)))
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, TimeRange{Start: at(9, 0), End: at(9, 1)}.IsValid())
	assert.False(t, TimeRange{Start: at(9, 0), End: at(9, 0)}.IsValid())
	assert.False(t, TimeRange{Start: at(10, 0), End: at(9, 0)}.IsValid())
}

func TestSlot(t *testing.T) {
	id := int64(7)
	s := Slot{StartTime: at(9, 0), EndTime: at(9, 30)}

	assert.False(t, s.IsReserved())
	s.ReservationID = &id
	assert.True(t, s.IsReserved())

	assert.Equal(t, 30*time.Minute, s.Duration())
	assert.True(t, s.Overlaps(at(9, 29), at(9, 45)))
	assert.False(t, s.Overlaps(at(9, 30), at(9, 45)))

	assert.True(t, s.HasStarted(at(9, 0)))
	assert.False(t, s.HasStarted(at(8, 59)))
}
