package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/storage/slot"
)

// SlotRepository репозиторий слотов поверх Store
// Возвращает те же ошибки, что и PostgreSQL репозиторий slot
type SlotRepository struct {
	store *Store
}

// CreateBatch вставляет пакет слотов
// Пересечение с существующими слотами или внутри пакета -> slot.ErrSlotConflict, ничего не сохраняется
func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	if r.batchOverlapsLocked(slots) {
		return nil, slot.ErrSlotConflict
	}

	now := time.Now().UTC()
	for _, s := range slots {
		r.store.nextSlotID++
		s.ID = r.store.nextSlotID
		s.Version = 0
		s.ReservationID = nil
		s.CreatedAt = now
		s.UpdatedAt = now
		r.store.putSlot(*s)
	}

	return slots, nil
}

// HasOverlap проверяет, пересекает ли интервал [start, end) существующие слоты инструктора
func (r *SlotRepository) HasOverlap(ctx context.Context, instructorID int64, start, end time.Time) (bool, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	return r.overlapsLocked(instructorID, start, end), nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	s, ok := r.store.slots[id]
	if !ok {
		return nil, slot.ErrSlotNotFound
	}
	s = cloneSlot(s)
	return &s, nil
}

// AttachReservation привязывает бронь к слоту, если версия не изменилась и бронь не привязана
func (r *SlotRepository) AttachReservation(ctx context.Context, slotID int64, expectedVersion int, reservationID int64) error {
	unlock := r.store.lock(ctx)
	defer unlock()

	s, ok := r.store.slots[slotID]
	if !ok || s.Version != expectedVersion || s.ReservationID != nil {
		return slot.ErrVersionConflict
	}

	id := reservationID
	s.ReservationID = &id
	s.Version++
	s.UpdatedAt = time.Now().UTC()
	r.store.putSlot(s)

	return nil
}

// ListByInstructor возвращает слоты инструктора, начинающиеся в окне [From, To)
func (r *SlotRepository) ListByInstructor(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	window := domain.TimeRange{Start: filter.From, End: filter.To}
	result := make([]*domain.Slot, 0)
	for _, s := range r.store.slots {
		if s.InstructorID != filter.InstructorID || !window.Contains(s.StartTime) {
			continue
		}
		if filter.OnlyFree && s.IsReserved() {
			continue
		}
		c := cloneSlot(s)
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *SlotRepository) overlapsLocked(instructorID int64, start, end time.Time) bool {
	for _, s := range r.store.slots {
		if s.InstructorID == instructorID && s.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// batchOverlapsLocked проверяет пересечения пакета между собой и с сохраненными слотами
// Интервалы сортируются по (инструктор, начало): пока пересечений нет, они не пересекаются
// попарно, поэтому достаточно сравнивать соседей
func (r *SlotRepository) batchOverlapsLocked(batch []*domain.Slot) bool {
	instructors := make(map[int64]struct{}, 1)
	for _, s := range batch {
		instructors[s.InstructorID] = struct{}{}
	}

	type interval struct {
		instructorID int64
		start, end   time.Time
	}

	intervals := make([]interval, 0, len(batch))
	for _, s := range batch {
		intervals = append(intervals, interval{s.InstructorID, s.StartTime, s.EndTime})
	}
	for _, s := range r.store.slots {
		if _, ok := instructors[s.InstructorID]; ok {
			intervals = append(intervals, interval{s.InstructorID, s.StartTime, s.EndTime})
		}
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].instructorID != intervals[j].instructorID {
			return intervals[i].instructorID < intervals[j].instructorID
		}
		return intervals[i].start.Before(intervals[j].start)
	})

	for i := 1; i < len(intervals); i++ {
		prev, cur := intervals[i-1], intervals[i]
		if prev.instructorID != cur.instructorID {
			continue
		}
		if cur.start.Before(prev.end) {
			return true
		}
	}

	return false
}
