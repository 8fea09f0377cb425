package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/upb/sportsgear-api/repositories"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	checks map[string]repositories.HealthChecker
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler probing the named dependencies
func NewHealthHandler(checks map[string]repositories.HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// HandleRoot handles GET /
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteText(w, http.StatusOK, "Hello World")
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_ = utils.WriteOK(w, response)
}

// HandleReadiness handles GET /readyz
// Readiness check - validates that all dependencies are available
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make(map[string]string, len(names))
	allHealthy := true
	for _, name := range names {
		if err := h.checks[name].HealthCheck(ctx); err != nil {
			h.logger.Warn("dependency health check failed",
				zap.String("dependency", name),
				zap.Error(err))
			checks[name] = "unhealthy"
			allHealthy = false
			continue
		}
		checks[name] = "healthy"
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)

	var err error
	if allHealthy {
		err = utils.WriteOK(w, HealthResponse{
			Status:    "healthy",
			Timestamp: timestamp,
			Checks:    checks,
		})
	} else {
		err = utils.WriteServiceUnavailable(w, "One or more dependencies are unavailable", map[string]interface{}{
			"status":    "unhealthy",
			"timestamp": timestamp,
			"checks":    checks,
		})
	}
	if err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}
