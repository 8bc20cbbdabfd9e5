package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"staffhub/internal/caching"
	"staffhub/internal/repositories"
)

// HealthHandlers handles health check endpoints.
type HealthHandlers struct {
	db       repositories.Database
	cacheSvc caching.CacheService
	version  string
}

func NewHealthHandlers(db repositories.Database, cacheSvc caching.CacheService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		version:  version,
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck reports liveness plus per-dependency state. A degraded
// cache does not fail the check; the database does.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
	}

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		if health.Status == "healthy" {
			health.Status = "degraded"
		}
	} else {
		health.Services["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Services["database"] == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, health)
}

// MetricsResponse reports lightweight operational numbers.
type MetricsResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Version    string                 `json:"version"`
	Goroutines int                    `json:"goroutines"`
	Metrics    map[string]interface{} `json:"metrics"`
}

// GetMetrics serves the cached headcount kept warm by the background
// job. A cold cache reports "unknown" rather than hitting the database.
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	ctx := c.Request().Context()

	var headcount interface{} = "unknown"
	if count, ok, err := h.cacheSvc.GetHeadcount(ctx); err == nil && ok {
		headcount = count
	}

	return c.JSON(http.StatusOK, &MetricsResponse{
		Timestamp:  time.Now().UTC(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
		Metrics: map[string]interface{}{
			"employee_headcount": headcount,
		},
	})
}

// ReadinessCheck determines if the application is ready to serve traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
