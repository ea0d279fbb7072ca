package get_rates_history

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

// Handle GET /api/v1/pricing/rates/history
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context())
	if err != nil {
		h.logger.Error("GET /pricing/rates/history - Failed to get history: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pricing/rates/history - History retrieved successfully: versions=%d", len(history.Versions))
	handlers.RespondJSON(w, http.StatusOK, history)
}
