package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/xknRiya/cats-api/internal/http/respond"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime and store status.
type HealthHandler struct {
	startedAt time.Time
	store     Pinger
	logger    *slog.Logger
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time, store Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store, logger: logger}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	uptime := time.Since(h.startedAt).Truncate(time.Second).String()
	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(r.Context(), "health check: store unreachable", "error", err)
		respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"uptime": uptime,
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": uptime,
	})
}
