package create_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	createAvailability "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_availability"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createAvailability.Request) (*createAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createAvailability.Response), args.Error(1)
}

func newRequest(username, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/instructors/"+username+"/availabilities", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"username": username})
}

func TestHandler_Created(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.NewNop())

	start := time.Date(2030, 1, 15, 9, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &createAvailability.Request{
		InstructorUsername: "tutor",
		From:               start,
		To:                 start.Add(time.Hour),
		DurationMinutes:    30,
	}).Return(&createAvailability.Response{Slots: []createAvailability.Slot{
		{ID: 1, InstructorID: 7, StartTime: start, EndTime: start.Add(30 * time.Minute), Version: 1, CreatedAt: start},
		{ID: 2, InstructorID: 7, StartTime: start.Add(30 * time.Minute), EndTime: start.Add(time.Hour), Version: 1, CreatedAt: start},
	}}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("tutor", `{"fromUtc":"2030-01-15 09:00","toUtc":"2030-01-15 10:00","durationMinutes":30}`))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body []SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "2030-01-15 09:00", body[0].UTCStartTime)
	assert.Equal(t, "2030-01-15 09:30", body[0].UTCEndTime)
	assert.Equal(t, "2030-01-15 10:00", body[1].UTCEndTime)
	uc.AssertExpectations(t)
}

func TestHandler_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "bad from", body: `{"fromUtc":"2030-01-15T09:00:00Z","toUtc":"2030-01-15 10:00","durationMinutes":30}`},
		{name: "bad to", body: `{"fromUtc":"2030-01-15 09:00","toUtc":"tomorrow","durationMinutes":30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("tutor", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: createAvailability.ErrSlotConflict, want: http.StatusConflict},
		{err: createAvailability.ErrInvalidRange, want: http.StatusBadRequest},
		{err: createAvailability.ErrInvalidInput, want: http.StatusBadRequest},
		{err: createAvailability.ErrInstructorNotFound, want: http.StatusNotFound},
		{err: createAvailability.ErrStoreUnavailable, want: http.StatusServiceUnavailable},
		{err: createAvailability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: Execute - step: boom", tt.err))
			h := NewHandler(uc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("tutor", `{"fromUtc":"2030-01-15 09:00","toUtc":"2030-01-15 10:00","durationMinutes":30}`))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
