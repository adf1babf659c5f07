package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

// Store in-process хранилище слотов и броней
// Сущности хранятся по ID, связь слот -> бронь и бронь -> слот
// выражена индексами, а не взаимными указателями
//
// Мьютекс стора играет роль блокировки строк PostgreSQL: каждая операция
// и каждая транзакция атомарны относительно остальных
// Откат транзакции восстанавливает только ключи, которые она изменила
type Store struct {
	mu sync.Mutex

	slots               map[int64]domain.Slot
	reservations        map[int64]domain.Reservation
	reservationBySlotID map[int64]int64

	nextSlotID        int64
	nextReservationID int64

	undo *undoLog
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		slots:               make(map[int64]domain.Slot),
		reservations:        make(map[int64]domain.Reservation),
		reservationBySlotID: make(map[int64]int64),
	}
}

// Slots возвращает репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Reservations возвращает репозиторий броней поверх хранилища
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// TxManager возвращает менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type txKey struct{}

// lock захватывает мьютекс, если вызов не внутри транзакции этого же стора
// Возвращает функцию освобождения
func (s *Store) lock(ctx context.Context) func() {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// undoLog прежние значения ключей, измененных в текущей транзакции
// nil в карте означает, что ключа до транзакции не было
type undoLog struct {
	slots               map[int64]*domain.Slot
	reservations        map[int64]*domain.Reservation
	reservationBySlotID map[int64]*int64
	nextSlotID          int64
	nextReservationID   int64
}

// begin начинает журнал отката, вызывается под мьютексом
func (s *Store) begin() {
	s.undo = &undoLog{
		slots:               make(map[int64]*domain.Slot),
		reservations:        make(map[int64]*domain.Reservation),
		reservationBySlotID: make(map[int64]*int64),
		nextSlotID:          s.nextSlotID,
		nextReservationID:   s.nextReservationID,
	}
}

// commit отбрасывает журнал
func (s *Store) commit() {
	s.undo = nil
}

// rollback возвращает измененные ключи и счетчики к состоянию на begin
func (s *Store) rollback() {
	if s.undo == nil {
		return
	}
	for id, prev := range s.undo.slots {
		if prev == nil {
			delete(s.slots, id)
			continue
		}
		s.slots[id] = *prev
	}
	for id, prev := range s.undo.reservations {
		if prev == nil {
			delete(s.reservations, id)
			continue
		}
		s.reservations[id] = *prev
	}
	for slotID, prev := range s.undo.reservationBySlotID {
		if prev == nil {
			delete(s.reservationBySlotID, slotID)
			continue
		}
		s.reservationBySlotID[slotID] = *prev
	}
	s.nextSlotID = s.undo.nextSlotID
	s.nextReservationID = s.undo.nextReservationID
	s.undo = nil
}

// putSlot сохраняет слот, в транзакции запоминая прежнее значение ключа
func (s *Store) putSlot(sl domain.Slot) {
	if s.undo != nil {
		if _, seen := s.undo.slots[sl.ID]; !seen {
			var prev *domain.Slot
			if old, ok := s.slots[sl.ID]; ok {
				c := cloneSlot(old)
				prev = &c
			}
			s.undo.slots[sl.ID] = prev
		}
	}
	s.slots[sl.ID] = cloneSlot(sl)
}

// putReservation сохраняет бронь и индекс слот -> бронь
func (s *Store) putReservation(res domain.Reservation) {
	if s.undo != nil {
		if _, seen := s.undo.reservations[res.ID]; !seen {
			var prev *domain.Reservation
			if old, ok := s.reservations[res.ID]; ok {
				prev = &old
			}
			s.undo.reservations[res.ID] = prev
		}
		if _, seen := s.undo.reservationBySlotID[res.SlotID]; !seen {
			var prev *int64
			if old, ok := s.reservationBySlotID[res.SlotID]; ok {
				prev = &old
			}
			s.undo.reservationBySlotID[res.SlotID] = prev
		}
	}
	s.reservations[res.ID] = res
	s.reservationBySlotID[res.SlotID] = res.ID
}

func cloneSlot(sl domain.Slot) domain.Slot {
	if sl.ReservationID != nil {
		id := *sl.ReservationID
		sl.ReservationID = &id
	}
	return sl
}
