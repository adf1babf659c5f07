package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/storage/reservation"
)

// ReservationRepository репозиторий броней поверх Store
// Возвращает те же ошибки, что и PostgreSQL репозиторий reservation
type ReservationRepository struct {
	store *Store
}

// Create создает бронь, на слот допускается не более одной брони
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	if _, ok := r.store.slots[res.SlotID]; !ok {
		return nil, reservation.ErrSlotNotFound
	}
	if _, taken := r.store.reservationBySlotID[res.SlotID]; taken {
		return nil, reservation.ErrSlotAlreadyReserved
	}

	r.store.nextReservationID++
	res.ID = r.store.nextReservationID
	res.CreatedAt = time.Now().UTC()

	stored := *res
	stored.InstructorID, stored.StartTime, stored.EndTime = 0, time.Time{}, time.Time{}
	r.store.putReservation(stored)

	return res, nil
}

// GetByID получает бронь по ID вместе с временем слота
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	unlock := r.store.lock(ctx)
	defer unlock()

	res, ok := r.store.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return r.projectLocked(res), nil
}

// ListWithFilter возвращает брони студента или брони на слоты инструктора в окне [From, To)
func (r *ReservationRepository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	if filter.StudentID == nil && filter.InstructorID == nil {
		return nil, reservation.ErrInvalidFilter
	}

	unlock := r.store.lock(ctx)
	defer unlock()

	window := domain.TimeRange{Start: filter.From, End: filter.To}
	result := make([]*domain.Reservation, 0)
	for _, res := range r.store.reservations {
		projected := r.projectLocked(res)
		if !window.Contains(projected.StartTime) {
			continue
		}
		if filter.StudentID != nil && projected.StudentID != *filter.StudentID {
			continue
		}
		if filter.StudentID == nil && projected.InstructorID != *filter.InstructorID {
			continue
		}
		result = append(result, projected)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].StartTime.Before(result[j].StartTime)
		}
		return result[i].SlotID < result[j].SlotID
	})

	return result, nil
}

func (r *ReservationRepository) projectLocked(res domain.Reservation) *domain.Reservation {
	if s, ok := r.store.slots[res.SlotID]; ok {
		res.InstructorID = s.InstructorID
		res.StartTime = s.StartTime
		res.EndTime = s.EndTime
	}
	return &res
}
