package create_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-TutorBooking/internal/usecase/reserve_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgSlotNotFound       = "слот не найден"
	msgStudentNotFound    = "студент не найден"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/students/{username}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /students/%s/reservations - Invalid request body: %v", username, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(username))
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /students/%s/reservations - Slot unavailable: slot_id=%d", username, req.AvailabilityID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("POST /students/%s/reservations - Slot not found: slot_id=%d", username, req.AvailabilityID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrStudentNotFound):
			h.logger.Warn("POST /students/%s/reservations - Student not found", username)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("POST /students/%s/reservations - Invalid input: %v", username, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, reserveSlot.ErrStoreUnavailable):
			h.logger.Error("POST /students/%s/reservations - Store unavailable: %v", username, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /students/%s/reservations - Failed to reserve slot: slot_id=%d, error=%v",
				username, req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /students/%s/reservations - Reservation created: reservation_id=%d, slot_id=%d",
		username, result.ID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
