package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Raph13009/notion-blogs/internal/api"
	"github.com/Raph13009/notion-blogs/internal/cache"
	"github.com/Raph13009/notion-blogs/internal/cms"
	"github.com/Raph13009/notion-blogs/internal/config"
	"github.com/Raph13009/notion-blogs/internal/content"
	"github.com/Raph13009/notion-blogs/internal/feed"
	"github.com/Raph13009/notion-blogs/internal/handler"
	"github.com/Raph13009/notion-blogs/internal/leads"
	"github.com/Raph13009/notion-blogs/internal/logger"
	"github.com/Raph13009/notion-blogs/internal/relay"
	"github.com/Raph13009/notion-blogs/internal/server"
	"github.com/Raph13009/notion-blogs/internal/storage"
	"github.com/Raph13009/notion-blogs/internal/telemetry"
)

const (
	snapshotWarmupTimeout = 30 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	return runServer(cfg, log)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger) int {
	metrics := telemetry.NewProvider()

	store, redisClient := buildCacheStore(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	source := buildContentSource(cfg, log)
	contentService := content.NewService(source, store, cfg.Cache.SnapshotTTL, log, metrics)
	warmSnapshot(contentService, log)

	leadService, db, err := buildLeadService(cfg, log, metrics)
	if err != nil {
		log.Error("Failed to build lead pipeline", logger.Error(err))
		return 1
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	renderer := feed.NewRenderer(cfg.Site.Name, cfg.Site.Description, cfg.Site.BaseURL)

	srv := api.NewServer(cfg, log,
		healthChecks(contentService, redisClient, db),
		handler.NewBlogHandler(contentService, log),
		handler.NewLeadHandler(leadService, log),
		handler.NewEstimateHandler(metrics),
		handler.NewFeedHandler(contentService, renderer, metrics, log),
		metrics,
	)

	log.Info("Blog backend starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("content_source", source.Name()),
	)

	if err := srv.RunWithGracefulShutdown(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Blog backend exited cleanly")
	return 0
}

// buildCacheStore returns the snapshot cache. Redis is preferred; when it is
// disabled or unreachable the in-memory store keeps the service running.
func buildCacheStore(cfg *config.Config, log logger.Logger) (cache.Store, *redis.Client) {
	if !cfg.Cache.Enabled {
		return cache.NewMemoryStore(), nil
	}

	client, err := cache.NewRedisClient(cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.DB)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory cache", logger.Error(err))
		return cache.NewMemoryStore(), nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Cache.Address))
	return cache.NewRedisStore(client, cfg.Service.Name, log), client
}

// buildContentSource picks the CMS source when credentials are configured,
// the bundled local posts otherwise.
func buildContentSource(cfg *config.Config, log logger.Logger) content.Source {
	if cfg.CMS.Token == "" || cfg.CMS.PostsDatabaseID == "" {
		log.Warn("CMS not configured, serving local posts")
		return content.NewLocalSource()
	}

	client, err := cms.NewClient(cfg.CMS.BaseURL, cfg.CMS.Token, cfg.CMS.PageSize, cfg.CMS.Timeout, log)
	if err != nil {
		log.Warn("CMS client rejected configuration, serving local posts", logger.Error(err))
		return content.NewLocalSource()
	}
	return cms.NewSource(client, cfg.CMS.PostsDatabaseID, log)
}

// warmSnapshot fills the content snapshot before serving traffic. Failure is
// not fatal; the first request falls back and retries.
func warmSnapshot(svc *content.Service, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotWarmupTimeout)
	defer cancel()

	if err := svc.Refresh(ctx); err != nil {
		log.Warn("Snapshot warmup failed", logger.Error(err))
	}
}

// buildLeadService wires the lead pipeline: email relay, CMS lead database
// and the optional Postgres audit store.
func buildLeadService(cfg *config.Config, log logger.Logger, metrics *telemetry.Provider) (*leads.Service, *sqlx.DB, error) {
	sender, err := relay.NewClient(cfg.Relay.Endpoint, cfg.Relay.Recipient, cfg.Relay.Timeout, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create relay client: %w", err)
	}

	var recorder leads.LeadRecorder
	if cfg.CMS.Token == "" || cfg.CMS.LeadsDatabaseID == "" {
		log.Warn("CMS leads database not configured, leads go to the relay only")
		recorder = leads.NewDisabledRecorder(log)
	} else {
		cmsClient, clientErr := cms.NewClient(cfg.CMS.BaseURL, cfg.CMS.Token, cfg.CMS.PageSize, cfg.CMS.Timeout, log)
		if clientErr != nil {
			return nil, nil, fmt.Errorf("create cms client: %w", clientErr)
		}
		recorder = cms.NewLeadWriter(cmsClient, cfg.CMS.LeadsDatabaseID, log)
	}

	var audit leads.AuditStore
	var db *sqlx.DB
	if cfg.Database.Enabled {
		db, err = storage.Connect(cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect leads database: %w", err)
		}
		log.Info("Leads database connected",
			logger.String("host", cfg.Database.Host),
			logger.Int("port", cfg.Database.Port),
		)
		audit = storage.NewLeadStore(db, log)
	}

	return leads.NewService(sender, recorder, audit, log, metrics), db, nil
}

// healthChecks builds the named dependency probes for /health.
func healthChecks(contentService *content.Service, redisClient *redis.Client, db *sqlx.DB) map[string]server.HealthChecker {
	checks := map[string]server.HealthChecker{
		"snapshot": func() server.CheckResult {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()

			snap := contentService.Current(ctx)
			if snap.Fallback {
				return server.CheckResult{
					Status:  server.HealthStatusDegraded,
					Message: "serving fallback posts",
				}
			}
			return server.CheckResult{
				Status:  server.HealthStatusHealthy,
				Message: fmt.Sprintf("%d posts", len(snap.Posts)),
			}
		},
	}

	if redisClient != nil {
		checks["redis"] = func() server.CheckResult {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()

			start := time.Now()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return server.CheckResult{Status: server.HealthStatusDegraded, Message: err.Error()}
			}
			return server.CheckResult{
				Status:  server.HealthStatusHealthy,
				Latency: time.Since(start).String(),
			}
		}
	}

	if db != nil {
		checks["database"] = func() server.CheckResult {
			ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
			defer cancel()

			start := time.Now()
			if err := db.PingContext(ctx); err != nil {
				return server.CheckResult{Status: server.HealthStatusUnhealthy, Message: err.Error()}
			}
			return server.CheckResult{
				Status:  server.HealthStatusHealthy,
				Latency: time.Since(start).String(),
			}
		}
	}

	return checks
}
