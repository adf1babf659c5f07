package create_availability

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// splitRange делит [from, to) на последовательные интервалы длиной duration
// Хвост короче duration отбрасывается: 09:00-09:50 по 20 минут дает 09:00-09:20 и 09:20-09:40
func splitRange(from, to time.Time, duration time.Duration) []domain.TimeRange {
	if duration <= 0 || !from.Before(to) {
		return nil
	}

	count := int(to.Sub(from) / duration)
	ranges := make([]domain.TimeRange, 0, count)

	start := from
	for i := 0; i < count; i++ {
		end := start.Add(duration)
		ranges = append(ranges, domain.TimeRange{Start: start, End: end})
		start = end
	}

	return ranges
}
