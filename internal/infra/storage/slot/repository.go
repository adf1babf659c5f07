package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TutorBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-TutorBooking/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"instructor_id",
	"start_time",
	"end_time",
	"version",
	"reservation_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет пакет слотов одним INSERT
// Либо создаются все слоты, либо ни одного: пересечение с существующими слотами
// (UNIQUE / EXCLUDE ограничения) возвращает ErrSlotConflict
// Заполняет ID, Version, CreatedAt, UpdatedAt переданных слотов
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return slots, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("slots").
		Columns("instructor_id", "start_time", "end_time")
	for _, s := range slots {
		// Значения приводятся к точности TIMESTAMPTZ, чтобы RETURNING совпал с входом
		s.StartTime = s.StartTime.UTC().Round(time.Microsecond)
		s.EndTime = s.EndTime.UTC().Round(time.Microsecond)
		insert = insert.Values(s.InstructorID, s.StartTime, s.EndTime)
	}

	query, args, err := insert.
		Suffix("RETURNING id, start_time, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) || pgerrors.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: CreateBatch - constraint %s", ErrSlotConflict, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Порядок RETURNING не гарантирован, сопоставляем по start_time
	byStart := make(map[int64]*domain.Slot, len(slots))
	for _, s := range slots {
		byStart[s.StartTime.UnixMicro()] = s
	}

	returned := 0
	for rows.Next() {
		var (
			id        int64
			startTime time.Time
			version   int
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&id, &startTime, &version, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}

		s, ok := byStart[startTime.UnixMicro()]
		if !ok {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected start_time %s in returning", ErrScanRow, startTime)
		}
		s.ID = id
		s.Version = version
		s.CreatedAt = createdAt
		s.UpdatedAt = updatedAt
		returned++
	}

	if err := rows.Err(); err != nil {
		// ошибки ограничений при multi-row insert могут прийти во время чтения строк
		if pgerrors.IsUniqueViolation(err) || pgerrors.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: CreateBatch - constraint %s", ErrSlotConflict, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: CreateBatch - iterate rows: %v", ErrScanRow, err)
	}

	if returned != len(slots) {
		return nil, fmt.Errorf("%w: CreateBatch - inserted %d of %d slots", ErrExecQuery, returned, len(slots))
	}

	return slots, nil
}

// HasOverlap проверяет, пересекает ли интервал [start, end) существующие слоты инструктора
func (r *Repository) HasOverlap(ctx context.Context, instructorID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasOverlap - scan exists: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetByID получает слот по ID вместе с текущей версией и ссылкой на бронь
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// AttachReservation привязывает бронь к слоту при условии, что версия слота
// не изменилась с момента чтения и бронь еще не привязана (compare-and-swap)
// При успехе версия увеличивается на 1
func (r *Repository) AttachReservation(ctx context.Context, slotID int64, expectedVersion int, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("reservation_id", reservationID).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"version": expectedVersion}).
		Where(squirrel.Eq{"reservation_id": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AttachReservation - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachReservation - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachReservation - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	return nil
}

// ListByInstructor возвращает слоты инструктора, начинающиеся в окне [From, To)
// Сортировка: start_time, id
func (r *Repository) ListByInstructor(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"instructor_id": filter.InstructorID}).
		Where(squirrel.GtOrEq{"start_time": filter.From}).
		Where(squirrel.Lt{"start_time": filter.To}).
		OrderBy("start_time ASC", "id ASC")

	if filter.OnlyFree {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByInstructor - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByInstructor - iterate rows: %v", ErrScanRow, err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		s             domain.Slot
		reservationID sql.NullInt64
	)

	err := row.Scan(
		&s.ID,
		&s.InstructorID,
		&s.StartTime,
		&s.EndTime,
		&s.Version,
		&reservationID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reservationID.Valid {
		id := reservationID.Int64
		s.ReservationID = &id
	}
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()

	return &s, nil
}
