package create_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	createAvailability "github.com/m04kA/SMC-TutorBooking/internal/usecase/create_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DD HH:MM"
	msgInvalidRange       = "некорректный диапазон или длительность слота"
	msgInvalidInput       = "некорректные входные данные"
	msgSlotConflict       = "новые слоты пересекаются с существующей доступностью"
	msgInstructorNotFound = "инструктор не найден"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/instructors/{username}/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /instructors/%s/availabilities - Invalid request body: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(username)
	if err != nil {
		h.logger.Warn("POST /instructors/%s/availabilities - Failed to parse request: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAvailability.ErrSlotConflict):
			h.logger.Warn("POST /instructors/%s/availabilities - Slot conflict: from=%s, to=%s", username, req.FromUTC, req.ToUTC)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createAvailability.ErrInvalidRange):
			h.logger.Warn("POST /instructors/%s/availabilities - Invalid range: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createAvailability.ErrInvalidInput):
			h.logger.Warn("POST /instructors/%s/availabilities - Invalid input: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAvailability.ErrInstructorNotFound):
			h.logger.Warn("POST /instructors/%s/availabilities - Instructor not found", username)
			handlers.RespondNotFound(w, msgInstructorNotFound)

		case errors.Is(err, createAvailability.ErrStoreUnavailable):
			h.logger.Error("POST /instructors/%s/availabilities - Store unavailable: %v", username, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /instructors/%s/availabilities - Failed to create availability: %v", username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /instructors/%s/availabilities - Created %d slots", username, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
