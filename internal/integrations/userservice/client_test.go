package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/internal/users/alice":
			_, _ = w.Write([]byte(`{"id":1,"username":"alice","studentId":10}`))
		case "/internal/users/bob":
			_, _ = w.Write([]byte(`{"id":2,"username":"bob","instructorId":20}`))
		case "/internal/users/carol":
			_, _ = w.Write([]byte(`{"id":3,"username":"carol"}`))
		case "/internal/users/broken":
			_, _ = w.Write([]byte(`{not json`))
		case "/internal/users/down":
			w.WriteHeader(http.StatusBadGateway)
		case "/internal/users/teapot":
			w.WriteHeader(http.StatusTeapot)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	client := NewClient(newTestServer(t).URL+"/", time.Second, logger.NewNop())
	ctx := context.Background()

	user, err := client.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	require.NotNil(t, user.StudentID)
	assert.Equal(t, int64(10), *user.StudentID)
	assert.Nil(t, user.InstructorID)
	assert.Equal(t, domain.RoleStudent, user.Role())

	tests := []struct {
		username string
		wantErr  error
	}{
		{username: "ghost", wantErr: ErrUserNotFound},
		{username: "", wantErr: ErrUserNotFound},
		{username: "broken", wantErr: ErrInvalidResponse},
		{username: "down", wantErr: ErrUnavailable},
		{username: "teapot", wantErr: ErrInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			_, err := client.GetUser(ctx, tt.username)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, 200*time.Millisecond, logger.NewNop())

	_, err := client.GetUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_RoleLookups(t *testing.T) {
	client := NewClient(newTestServer(t).URL, time.Second, logger.NewNop())
	ctx := context.Background()

	studentID, err := client.GetStudentID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), studentID)

	_, err = client.GetStudentID(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotStudent)

	instructorID, err := client.GetInstructorID(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(20), instructorID)

	_, err = client.GetInstructorID(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotInstructor)

	_, err = client.GetInstructorID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUser_Role(t *testing.T) {
	id := int64(1)

	assert.Equal(t, domain.RoleNone, (&User{}).Role())
	assert.Equal(t, domain.RoleInstructor, (&User{InstructorID: &id}).Role())
	assert.Equal(t, domain.RoleStudent, (&User{StudentID: &id, InstructorID: &id}).Role())
}
