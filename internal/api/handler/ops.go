// Package handler provides HTTP handlers for the TripWeave API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/tripweave/tripweave/internal/api/models"
	"github.com/tripweave/tripweave/internal/api/response"
	"github.com/tripweave/tripweave/internal/planner"
)

// ReadinessChecker reports whether a dependency is ready to serve.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	planner   *planner.Service
	db        ReadinessChecker
}

// NewOpsHandler creates a new OpsHandler. db may be nil when the service runs
// without a database.
func NewOpsHandler(version, buildTime string, plannerService *planner.Service, db ReadinessChecker) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		planner:   plannerService,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	details := map[string]interface{}{}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = models.HealthStatusDegraded
			details["database"] = err.Error()
		}
	}

	health := models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	}
	if len(details) > 0 {
		health.Details = details
	}

	code := http.StatusOK
	if status != models.HealthStatusOK {
		code = http.StatusServiceUnavailable
	}
	response.JSON(w, r, code, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem and planner status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	dbStatus := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
	if h.db == nil {
		detail := "running without a database"
		dbStatus.Status = models.HealthStatusDegraded
		dbStatus.Detail = &detail
	} else if err := h.db.Ping(r.Context()); err != nil {
		detail := err.Error()
		dbStatus.Status = models.HealthStatusFail
		dbStatus.Detail = &detail
	}

	stats := h.planner.CacheStats()
	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       now,
		Subsystems: []models.SubsystemStatus{dbStatus},
		Planner: models.PlannerStatus{
			Provider:     stats.Provider,
			CacheEntries: stats.TotalEntries,
			FreshEntries: stats.FreshEntries,
			StaleEntries: stats.StaleEntries,
		},
	}
	if dbStatus.Status == models.HealthStatusFail {
		status.Status = models.HealthStatusDegraded
	}

	response.JSON(w, r, http.StatusOK, status)
}
