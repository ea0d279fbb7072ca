package get_booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/domain"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings"
	"github.com/m04kA/SMC-MovingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "invalid booking id or reference"
	msgNotFound         = "booking not found"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// bookingId - числовой ID или номер заявки NF-XXXXXXXX
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["bookingId"]

	var (
		booking *models.BookingResponse
		err     error
	)
	if strings.HasPrefix(strings.ToUpper(key), domain.ReferencePrefix) {
		booking, err = h.service.GetByReference(r.Context(), key)
	} else {
		bookingID, parseErr := strconv.ParseInt(key, 10, 64)
		if parseErr != nil || bookingID <= 0 {
			h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %q", key)
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		booking, err = h.service.GetByID(r.Context(), bookingID)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: key=%s", key)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: key=%s, error=%v", key, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved successfully: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
