package list_availabilities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability"
	"github.com/m04kA/SMC-TutorBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	msgInvalidFrom        = "некорректный параметр from, ожидается YYYY-MM-DD HH:MM"
	msgInvalidTo          = "некорректный параметр to, ожидается YYYY-MM-DD HH:MM"
	msgInvalidOnlyFree    = "некорректный параметр onlyFree, ожидается true или false"
	msgInvalidRange       = "некорректное временное окно"
	msgInvalidInput       = "некорректные входные данные"
	msgInstructorNotFound = "инструктор не найден"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instructors/{username}/availabilities?from=...&to=...&onlyFree=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	query := r.URL.Query()

	from, err := types.ParseDateTime(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /instructors/%s/availabilities - Invalid from: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	to, err := types.ParseDateTime(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /instructors/%s/availabilities - Invalid to: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	onlyFree := false
	if raw := query.Get("onlyFree"); raw != "" {
		onlyFree, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /instructors/%s/availabilities - Invalid onlyFree: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidOnlyFree)
			return
		}
	}

	result, err := h.service.ListSlots(r.Context(), &models.ListSlotsRequest{
		InstructorUsername: username,
		From:               from,
		To:                 to,
		OnlyFree:           onlyFree,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /instructors/%s/availabilities - Invalid range: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /instructors/%s/availabilities - Invalid input: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrInstructorNotFound):
			h.logger.Warn("GET /instructors/%s/availabilities - Instructor not found", username)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /instructors/%s/availabilities - Store unavailable: %v", username, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /instructors/%s/availabilities - Failed to list slots: %v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /instructors/%s/availabilities - Found %d slots", username, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result.Slots)
}
