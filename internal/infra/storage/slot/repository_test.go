package slot

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/dbmetrics"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 15, hour, minute, 0, 0, time.UTC)
}

func newTestRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

var columns = []string{"id", "instructor_id", "start_time", "end_time", "version", "reservation_id", "created_at", "updated_at"}

func TestRepository_CreateBatch(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	slots := []*domain.Slot{
		{InstructorID: 1, StartTime: at(9, 0), EndTime: at(9, 30)},
		{InstructorID: 1, StartTime: at(9, 30), EndTime: at(10, 0)},
	}

	// RETURNING в обратном порядке: сопоставление идет по start_time
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slots (instructor_id,start_time,end_time) VALUES ($1,$2,$3),($4,$5,$6) RETURNING id")).
		WithArgs(int64(1), at(9, 0), at(9, 30), int64(1), at(9, 30), at(10, 0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "version", "created_at", "updated_at"}).
			AddRow(11, at(9, 30), 0, now, now).
			AddRow(10, at(9, 0), 0, now, now))

	created, err := repo.CreateBatch(context.Background(), slots)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, int64(10), created[0].ID)
	assert.Equal(t, int64(11), created[1].ID)
	assert.Equal(t, 0, created[0].Version)
	assert.Equal(t, now, created[1].CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBatch_SubMicrosecondInput(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	start := at(9, 0).Add(1700 * time.Nanosecond)
	end := at(9, 30).Add(400 * time.Nanosecond)
	stored := at(9, 0).Add(2 * time.Microsecond)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO slots (instructor_id,start_time,end_time) VALUES ($1,$2,$3) RETURNING id")).
		WithArgs(int64(1), stored, at(9, 30)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time", "version", "created_at", "updated_at"}).
			AddRow(10, stored, 0, now, now))

	created, err := repo.CreateBatch(context.Background(), []*domain.Slot{
		{InstructorID: 1, StartTime: start, EndTime: end},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(10), created[0].ID)
	assert.Equal(t, stored, created[0].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBatch_Empty(t *testing.T) {
	repo, mock := newTestRepo(t)

	created, err := repo.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateBatch_Conflict(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "unique violation", code: "23505"},
		{name: "exclusion violation", code: "23P01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepo(t)

			mock.ExpectQuery("INSERT INTO slots").
				WillReturnError(&pq.Error{Code: tt.code, Constraint: "slots_no_overlap"})

			_, err := repo.CreateBatch(context.Background(), []*domain.Slot{
				{InstructorID: 1, StartTime: at(9, 0), EndTime: at(9, 30)},
			})
			assert.ErrorIs(t, err, ErrSlotConflict)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateBatch_ExecError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("INSERT INTO slots").WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateBatch(context.Background(), []*domain.Slot{
		{InstructorID: 1, StartTime: at(9, 0), EndTime: at(9, 30)},
	})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotConflict)
}

func TestRepository_HasOverlap(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM slots WHERE instructor_id = $1 AND start_time < $2 AND end_time > $3 )")).
		WithArgs(int64(1), at(9, 45), at(9, 15)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := repo.HasOverlap(context.Background(), 1, at(9, 15), at(9, 45))
	require.NoError(t, err)
	assert.True(t, overlap)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM slots WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(5, 1, at(9, 0), at(9, 30), 2, int64(44), now, now))

	s, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), s.ID)
	assert.Equal(t, 2, s.Version)
	require.NotNil(t, s.ReservationID)
	assert.Equal(t, int64(44), *s.ReservationID)
	assert.True(t, s.IsReserved())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("FROM slots").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_AttachReservation(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE slots SET reservation_id = $1, version = version + 1, updated_at = NOW() WHERE id = $2 AND version = $3 AND reservation_id IS NULL")).
		WithArgs(int64(99), int64(5), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AttachReservation(context.Background(), 5, 0, 99))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AttachReservation_VersionConflict(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec("UPDATE slots").
		WithArgs(int64(99), int64(5), 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AttachReservation(context.Background(), 5, 0, 99)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestRepository_ListByInstructor(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM slots WHERE instructor_id = $1 AND start_time >= $2 AND start_time < $3 AND reservation_id IS NULL ORDER BY start_time ASC, id ASC")).
		WithArgs(int64(1), at(9, 0), at(12, 0)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 1, at(9, 0), at(9, 30), 0, nil, now, now).
			AddRow(2, 1, at(9, 30), at(10, 0), 0, nil, now, now))

	slots, err := repo.ListByInstructor(context.Background(), domain.SlotsFilter{
		InstructorID: 1,
		From:         at(9, 0),
		To:           at(12, 0),
		OnlyFree:     true,
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Nil(t, slots[0].ReservationID)
	assert.Equal(t, at(9, 30), slots[1].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}
