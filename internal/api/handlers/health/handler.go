package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MovingService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

type Handler struct {
	checks map[string]Pinger
	logger Logger
}

// NewHandler создает обработчик проверки здоровья; checks по имени компонента
func NewHandler(checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: statusOK, Components: make(map[string]bool, len(h.checks))}
	for name, check := range h.checks {
		err := check.PingContext(ctx)
		resp.Components[name] = err == nil
		if err != nil {
			h.logger.Warn("GET /health - Component unavailable: component=%s, error=%v", name, err)
			resp.Status = statusDegraded
		}
	}

	status := http.StatusOK
	if resp.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
