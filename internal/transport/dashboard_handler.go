package transport

import (
	"net/http"

	"invomaster/internal/middleware"
	"invomaster/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DashboardHandler serves the catalog overview aggregates
type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

// RegisterRoutes registers the dashboard route
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/dashboard", h.Summary)
}

// Summary returns catalog aggregates for the overview screen
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard summary", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, summary)
}
