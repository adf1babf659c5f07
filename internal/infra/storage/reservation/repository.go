package reservation

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-TutorBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-TutorBooking/pkg/psqlbuilder"
)

// Колонки проекции брони вместе с данными слота
var projectionColumns = []string{
	"r.id",
	"r.student_id",
	"r.slot_id",
	"r.description",
	"r.created_at",
	"s.instructor_id",
	"s.start_time",
	"s.end_time",
}

// Repository репозиторий для работы с бронями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронь
// Вызывается внутри транзакции вместе с slot.AttachReservation:
// UNIQUE(slot_id) не даст создать вторую бронь на тот же слот
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns("student_id", "slot_id", "description").
		Values(reservation.StudentID, reservation.SlotID, reservation.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
	)
	if err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, ErrSlotAlreadyReserved
		case pgerrors.IsForeignKeyViolation(err):
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронь по ID вместе с временем слота
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(projectionColumns...).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// ListWithFilter возвращает брони студента или брони на слоты инструктора,
// у которых слот начинается в окне [From, To)
// Выполняется одним SELECT, сортировка: s.start_time, s.id
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(projectionColumns...).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Where(squirrel.GtOrEq{"s.start_time": filter.From}).
		Where(squirrel.Lt{"s.start_time": filter.To}).
		OrderBy("s.start_time ASC", "s.id ASC")

	switch {
	case filter.StudentID != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.student_id": *filter.StudentID})
	case filter.InstructorID != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.instructor_id": *filter.InstructorID})
	default:
		return nil, ErrInvalidFilter
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithFilter - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - iterate rows: %v", ErrScanRow, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation

	err := row.Scan(
		&reservation.ID,
		&reservation.StudentID,
		&reservation.SlotID,
		&reservation.Description,
		&reservation.CreatedAt,
		&reservation.InstructorID,
		&reservation.StartTime,
		&reservation.EndTime,
	)
	if err != nil {
		return nil, err
	}

	reservation.StartTime = reservation.StartTime.UTC()
	reservation.EndTime = reservation.EndTime.UTC()

	return &reservation, nil
}
