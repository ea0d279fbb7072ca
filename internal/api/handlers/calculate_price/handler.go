package calculate_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/service/pricing"
	calculatePrice "github.com/m04kA/SMC-MovingService/internal/usecase/calculate_price"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgValidationFailed   = "validation failed"
	msgInvalidMove        = "invalid move details"
)

type Handler struct {
	useCase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/price-estimates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req calculatePrice.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /price-estimates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var validationErr *calculatePrice.ValidationError
		var pricingErr *pricing.InvalidInputError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /price-estimates - Validation failed: %v", validationErr.Details())
			handlers.RespondValidationError(w, msgValidationFailed, validationErr.Details())

		case errors.As(err, &pricingErr):
			h.logger.Warn("POST /price-estimates - Invalid move details: %v", err)
			handlers.RespondValidationError(w, msgInvalidMove, []string{pricingErr.Field + " " + pricingErr.Reason})

		default:
			h.logger.Error("POST /price-estimates - Failed to calculate price: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
