package get_rates

import (
	"net/http"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
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

// Handle GET /api/v1/pricing/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.GetActive(r.Context())
	if err != nil {
		h.logger.Error("GET /pricing/rates - Failed to get rates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pricing/rates - Rates retrieved successfully: version=%d", rates.Version)
	handlers.RespondJSON(w, http.StatusOK, rates)
}
