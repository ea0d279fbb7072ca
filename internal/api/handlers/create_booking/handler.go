package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	createBooking "github.com/m04kA/SMC-MovingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgInvalidMove        = "invalid move details"
	msgInvalidMovingDate  = "moving date cannot be in the past"
	msgDateTooFar         = "moving date is too far in the future"
	msgDateFullyBooked    = "no crews available on the selected date"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var validationErr *createBooking.ValidationError
		var pricingErr *pricing.InvalidInputError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Validation failed: email=%s, details=%v", req.CustomerEmail, validationErr.Details())
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Details())

		case errors.As(err, &pricingErr):
			h.logger.Warn("POST /bookings - Invalid move details: email=%s, error=%v", req.CustomerEmail, err)
			handlers.RespondValidationError(w, msgInvalidMove, []string{pricingErr.Field + " " + pricingErr.Reason})

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Moving date in the past: date=%s", req.MovingDate)
			handlers.RespondBadRequest(w, msgInvalidMovingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.MovingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrDateFullyBooked):
			h.logger.Warn("POST /bookings - Date fully booked: date=%s", req.MovingDate)
			handlers.RespondConflict(w, msgDateFullyBooked)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v", req.CustomerEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Duplicated {
		h.logger.Info("POST /bookings - Duplicate submission: email=%s", req.CustomerEmail)
		handlers.RespondJSON(w, http.StatusOK, duplicateResponse())
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s",
		result.BookingID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
