package update_rates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
	"github.com/m04kA/SMC-MovingService/internal/service/rates"
	"github.com/m04kA/SMC-MovingService/internal/service/rates/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidData        = "invalid rate table"
)

type Handler struct {
	service RatesService
	logger  Logger
}

func NewHandler(service RatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/pricing/rates
// Публикует новую версию тарифов, в ответе созданная версия
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateRatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pricing/rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("PUT /pricing/rates - Invalid data: error=%v", err)
			handlers.RespondValidationError(w, msgInvalidData, []string{err.Error()})

		default:
			h.logger.Error("PUT /pricing/rates - Failed to update rates: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /pricing/rates - Rates updated successfully: version=%d", result.Version)
	handlers.RespondJSON(w, http.StatusOK, result)
}
