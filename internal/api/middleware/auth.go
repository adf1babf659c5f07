package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
)

// UserNameHeader заголовок с именем аутентифицированного пользователя (выставляет gateway)
const UserNameHeader = "X-User-Name"

const (
	msgMissingUser   = "отсутствует заголовок X-User-Name"
	msgForeignTarget = "доступ к ресурсам другого пользователя запрещен"
)

type usernameKey struct{}

// Auth извлекает имя пользователя из X-User-Name и кладет его в контекст
// Аутентификацию выполняет внешний gateway
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.Header.Get(UserNameHeader))
		if username == "" {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey{}, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUsername возвращает имя пользователя, выставленное Auth
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey{}).(string)
	return username, ok && username != ""
}

// SameUser требует, чтобы переменная пути {username} совпадала с пользователем из Auth
// Должен применяться после Auth
func SameUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetUsername(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUser)
			return
		}

		if target := mux.Vars(r)["username"]; target != "" && target != username {
			handlers.RespondForbidden(w, msgForeignTarget)
			return
		}

		next.ServeHTTP(w, r)
	})
}
