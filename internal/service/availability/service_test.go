package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/infra/storage/memory"
	userClient "github.com/m04kA/SMC-TutorBooking/internal/integrations/userservice"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

func at(hour, minute int) time.Time {
	return time.Date(2030, 1, 15, hour, minute, 0, 0, time.UTC)
}

type fakeUsers map[string]int64

func (f fakeUsers) GetInstructorID(_ context.Context, username string) (int64, error) {
	if username == "down" {
		return 0, userClient.ErrUnavailable
	}
	id, ok := f[username]
	if !ok {
		return 0, userClient.ErrUserNotFound
	}
	return id, nil
}

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	_, err := store.Slots().CreateBatch(ctx, []*domain.Slot{
		{InstructorID: 1, StartTime: at(10, 0), EndTime: at(10, 30)},
		{InstructorID: 1, StartTime: at(9, 0), EndTime: at(9, 30)},
		{InstructorID: 1, StartTime: at(9, 30), EndTime: at(10, 0)},
		{InstructorID: 2, StartTime: at(9, 0), EndTime: at(9, 30)},
	})
	require.NoError(t, err)

	return NewService(store.Slots(), fakeUsers{"ivan": 1, "olga": 2}, store.TxManager(), logger.NewNop()), store
}

func TestService_ListSlots(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	resp, err := svc.ListSlots(ctx, &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 0), To: at(11, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "2030-01-15 09:00", resp.Slots[0].UTCStartTime)
	assert.Equal(t, "2030-01-15 09:30", resp.Slots[1].UTCStartTime)
	assert.Equal(t, "2030-01-15 10:00", resp.Slots[2].UTCStartTime)
	assert.Equal(t, 30, resp.Slots[0].DurationMinutes)

	// бронируем 09:30, он пропадает из свободных
	require.NoError(t, store.Slots().AttachReservation(ctx, resp.Slots[1].ID, 0, 42))

	free, err := svc.ListSlots(ctx, &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 0), To: at(11, 0), OnlyFree: true})
	require.NoError(t, err)
	require.Len(t, free.Slots, 2)
	assert.Equal(t, "2030-01-15 09:00", free.Slots[0].UTCStartTime)
	assert.Equal(t, "2030-01-15 10:00", free.Slots[1].UTCStartTime)

	all, err := svc.ListSlots(ctx, &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 0), To: at(11, 0)})
	require.NoError(t, err)
	assert.True(t, all.Slots[1].Reserved)
	require.NotNil(t, all.Slots[1].ReservationID)
	assert.Equal(t, int64(42), *all.Slots[1].ReservationID)
	assert.Equal(t, 1, all.Slots[1].Version)
}

func TestService_ListSlots_WindowByStartTime(t *testing.T) {
	svc, _ := newService(t)

	// 09:30 начинается в окне, 10:00 на границе окна не входит
	resp, err := svc.ListSlots(context.Background(), &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 15), To: at(10, 0)})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2030-01-15 09:30", resp.Slots[0].UTCStartTime)
}

func TestService_ListSlots_Errors(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name    string
		req     *models.ListSlotsRequest
		wantErr error
	}{
		{name: "empty window", req: &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 0), To: at(9, 0)}, wantErr: ErrInvalidRange},
		{name: "reversed window", req: &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(10, 0), To: at(9, 0)}, wantErr: ErrInvalidRange},
		{name: "no username", req: &models.ListSlotsRequest{From: at(9, 0), To: at(10, 0)}, wantErr: ErrInvalidInput},
		{name: "unknown instructor", req: &models.ListSlotsRequest{InstructorUsername: "nobody", From: at(9, 0), To: at(10, 0)}, wantErr: ErrInstructorNotFound},
		{name: "identity provider down", req: &models.ListSlotsRequest{InstructorUsername: "down", From: at(9, 0), To: at(10, 0)}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListSlots(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) ListByInstructor(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	args := m.Called(ctx, filter)
	if s, ok := args.Get(0).([]*domain.Slot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestService_ListSlots_StoreUnavailable(t *testing.T) {
	repo := &mockSlotRepo{}
	repo.On("ListByInstructor", mock.Anything, domain.SlotsFilter{InstructorID: 1, From: at(9, 0), To: at(10, 0), OnlyFree: true}).
		Return(nil, errors.New("connection refused"))

	svc := NewService(repo, fakeUsers{"ivan": 1}, memory.NewStore().TxManager(), logger.NewNop())

	_, err := svc.ListSlots(context.Background(), &models.ListSlotsRequest{InstructorUsername: "ivan", From: at(9, 0), To: at(10, 0), OnlyFree: true})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	repo.AssertExpectations(t)
}
