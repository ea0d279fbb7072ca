package calculate_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	calculateQuote "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_quote"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgInvalidQuote       = "invalid quote details"
)

type Handler struct {
	useCase CalculateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CalculateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req calculateQuote.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var validationErr *calculateQuote.ValidationError
		var pricingErr *pricing.InvalidInputError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /quotes - Validation failed: %v", validationErr.Details())
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Details())

		case errors.As(err, &pricingErr):
			h.logger.Warn("POST /quotes - Invalid quote details: %v", err)
			handlers.RespondValidationError(w, msgInvalidQuote, []string{pricingErr.Field + " " + pricingErr.Reason})

		default:
			h.logger.Error("POST /quotes - Failed to calculate quote: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
