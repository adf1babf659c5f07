package list_availabilities

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListSlots(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SlotListResponse), args.Error(1)
}

func newRequest(username string, query url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/instructors/"+username+"/availabilities?"+query.Encode(), nil)
	return mux.SetURLVars(req, map[string]string{"username": username})
}

func TestHandler_OK(t *testing.T) {
	svc := new(mockService)
	h := NewHandler(svc, logger.NewNop())

	from := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)
	svc.On("ListSlots", mock.Anything, &models.ListSlotsRequest{
		InstructorUsername: "tutor",
		From:               from,
		To:                 from.Add(24 * time.Hour),
		OnlyFree:           true,
	}).Return(&models.SlotListResponse{Slots: []models.SlotResponse{
		{ID: 1, InstructorID: 7, UTCStartTime: "2030-01-15 09:00", UTCEndTime: "2030-01-15 09:30", Version: 1},
	}}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("tutor", url.Values{
		"from":     {"2030-01-15 00:00"},
		"to":       {"2030-01-16 00:00"},
		"onlyFree": {"true"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(1), body[0].ID)
	svc.AssertExpectations(t)
}

func TestHandler_EmptyListIsArray(t *testing.T) {
	svc := new(mockService)
	svc.On("ListSlots", mock.Anything, mock.Anything).Return(&models.SlotListResponse{Slots: []models.SlotResponse{}}, nil)
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("tutor", url.Values{"from": {"2030-01-15 00:00"}, "to": {"2030-01-16 00:00"}}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{name: "missing from", query: url.Values{"to": {"2030-01-16 00:00"}}},
		{name: "bad to", query: url.Values{"from": {"2030-01-15 00:00"}, "to": {"2030-01-16"}}},
		{name: "bad onlyFree", query: url.Values{"from": {"2030-01-15 00:00"}, "to": {"2030-01-16 00:00"}, "onlyFree": {"maybe"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("tutor", tt.query))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "ListSlots", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: availability.ErrInvalidRange, want: http.StatusBadRequest},
		{err: availability.ErrInvalidInput, want: http.StatusBadRequest},
		{err: availability.ErrInstructorNotFound, want: http.StatusNotFound},
		{err: availability.ErrStoreUnavailable, want: http.StatusServiceUnavailable},
		{err: availability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(mockService)
			svc.On("ListSlots", mock.Anything, mock.Anything).Return(nil, tt.err)
			h := NewHandler(svc, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest("tutor", url.Values{"from": {"2030-01-15 00:00"}, "to": {"2030-01-16 00:00"}}))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
