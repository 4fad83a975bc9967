package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether a dependency can serve traffic.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	database  HealthChecker
	version   string
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(database HealthChecker, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		database:  database,
		version:   version,
		startTime: time.Now(),
		logger:    logger.With("component", "health_handler"),
	}
}

const serviceName = "product-service"

// Root answers the test endpoint at /
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"hello": "World"})
}

// HealthCheck performs a basic health check
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status("healthy"))
}

// LivenessCheck reports that the process is running
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, h.status("alive"))
}

// ReadinessCheck pings the database
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	start := time.Now()
	check := HealthStatus{Status: "healthy", Message: "connected"}

	if h.database == nil {
		check = HealthStatus{Status: "unhealthy", Message: "database not configured"}
	} else if err := h.database.HealthCheck(c.Request().Context()); err != nil {
		h.logger.Warn("database not ready", "error", err)
		check = HealthStatus{Status: "unhealthy", Message: "database connection failed"}
	}
	check.Latency = time.Since(start).String()

	response := ReadinessResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Checks:    map[string]HealthStatus{"database": check},
	}

	statusCode := http.StatusOK
	if check.Status != "healthy" {
		response.Status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, response)
}

func (h *HealthHandler) status(status string) HealthResponse {
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
	}
}

// Response types
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

type ReadinessResponse struct {
	Status    string                  `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
	Service   string                  `json:"service"`
	Checks    map[string]HealthStatus `json:"checks"`
}

type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Latency string `json:"latency,omitempty"`
}
