package server

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus represents the status of a health check.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response format.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one named dependency check.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker probes one dependency.
type HealthChecker func() CheckResult

func registerHealthRoutes(router *gin.Engine, cfg *Config, checks map[string]HealthChecker, startTime time.Time) {
	router.GET("/health", healthHandler(cfg, checks, startTime))
	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health/memory", memoryHealthHandler())
}

func healthHandler(cfg *Config, checks map[string]HealthChecker, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: cfg.ServiceName,
			Version: cfg.ServiceVersion,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
		}

		if len(checks) > 0 {
			response.Checks = make(map[string]CheckResult, len(checks))
			for name, checker := range checks {
				result := checker()
				response.Checks[name] = result

				switch result.Status {
				case HealthStatusUnhealthy:
					response.Status = HealthStatusUnhealthy
				case HealthStatusDegraded:
					if response.Status == HealthStatusHealthy {
						response.Status = HealthStatusDegraded
					}
				}
			}
		}

		statusCode := http.StatusOK
		if response.Status == HealthStatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, response)
	}
}

func memoryHealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		const bytesPerMB = 1024 * 1024
		c.JSON(http.StatusOK, gin.H{
			"alloc_mb":       fmt.Sprintf("%.1f", float64(stats.Alloc)/bytesPerMB),
			"total_alloc_mb": fmt.Sprintf("%.1f", float64(stats.TotalAlloc)/bytesPerMB),
			"sys_mb":         fmt.Sprintf("%.1f", float64(stats.Sys)/bytesPerMB),
			"num_gc":         stats.NumGC,
			"goroutines":     runtime.NumGoroutine(),
		})
	}
}
