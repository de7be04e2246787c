// Package api assembles the HTTP server from the route handlers.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Raph13009/notion-blogs/internal/config"
	"github.com/Raph13009/notion-blogs/internal/handler"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/server"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

// NewServer creates the HTTP server with the full route table and the
// standard middleware stack.
func NewServer(
	cfg *config.Config,
	log logger.Logger,
	checks map[string]server.HealthChecker,
	blogHandler *handler.BlogHandler,
	leadHandler *handler.LeadHandler,
	estimateHandler *handler.EstimateHandler,
	feedHandler *handler.FeedHandler,
	metrics *telemetry.Provider,
) *server.Server {
	serverCfg := &server.Config{
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
	}

	return server.New(serverCfg, log, checks, func(router *gin.Engine) {
		SetupRoutes(router, blogHandler, leadHandler, estimateHandler, feedHandler, metrics)
	})
}
