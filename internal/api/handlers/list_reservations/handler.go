package list_reservations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/service/reservations"
	"github.com/m04kA/SMC-TutorBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	msgInvalidFrom  = "некорректный параметр from, ожидается YYYY-MM-DD HH:MM"
	msgInvalidTo    = "некорректный параметр to, ожидается YYYY-MM-DD HH:MM"
	msgInvalidRange = "некорректное временное окно"
	msgInvalidInput = "некорректные входные данные"
	msgUserNotFound = "пользователь не найден"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{username}/reservations?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	query := r.URL.Query()

	from, err := types.ParseDateTime(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /users/%s/reservations - Invalid from: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	to, err := types.ParseDateTime(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /users/%s/reservations - Invalid to: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	result, err := h.service.ListInWindow(r.Context(), &models.ListInWindowRequest{
		Username: username,
		From:     from,
		To:       to,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidRange):
			h.logger.Warn("GET /users/%s/reservations - Invalid range: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /users/%s/reservations - Invalid input: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reservations.ErrUserNotFound):
			h.logger.Warn("GET /users/%s/reservations - User not found", username)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, reservations.ErrStoreUnavailable):
			h.logger.Error("GET /users/%s/reservations - Store unavailable: %v", username, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /users/%s/reservations - Failed to list reservations: %v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/%s/reservations - Found %d reservations, role=%s", username, len(result.Reservations), result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
