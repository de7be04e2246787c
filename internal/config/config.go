package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName = "notion-blogs"
	defaultServicePort = 8095
	defaultVersion     = "0.1.0"

	defaultSiteName        = "BoostAIConsulting Blog"
	defaultSiteDescription = "Practical product, engineering, and growth playbooks for tech founders."
	defaultSiteBaseURL     = "https://blog.boostaiconsulting.com"

	defaultCMSPageSize = 100
	defaultCMSTimeout  = 15 * time.Second

	defaultRelayEndpoint = "https://formsubmit.co/ajax"
	defaultRelayTimeout  = 10 * time.Second

	defaultRedisAddress = "localhost:6379"
	defaultSnapshotTTL  = time.Hour

	defaultDBHost    = "localhost"
	defaultDBPort    = 5432
	defaultDBName    = "leads"
	defaultDBUser    = "postgres"
	defaultDBSSLMode = "disable"

	defaultLoggingLevel = "info"
)

// Config holds the application configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Site     SiteConfig     `yaml:"site"`
	CMS      CMSConfig      `yaml:"cms"`
	Relay    RelayConfig    `yaml:"relay"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"NOTION_BLOGS_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"         yaml:"debug"`
}

// SiteConfig identifies the public site the service backs. The base URL is
// used for canonical links in the feed and in slug redirects.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BaseURL     string `env:"SITE_BASE_URL" yaml:"base_url"`
}

// CMSConfig holds the headless CMS connection settings. When Token or
// PostsDatabaseID is empty the content index falls back to the built-in
// local posts.
type CMSConfig struct {
	BaseURL         string        `env:"CMS_BASE_URL"          yaml:"base_url"`
	Token           string        `env:"CMS_TOKEN"             yaml:"token"`
	PostsDatabaseID string        `env:"CMS_POSTS_DATABASE_ID" yaml:"posts_database_id"`
	LeadsDatabaseID string        `env:"CMS_LEADS_DATABASE_ID" yaml:"leads_database_id"`
	PageSize        int           `yaml:"page_size"`
	Timeout         time.Duration `yaml:"timeout"`
}

// RelayConfig holds the outbound email relay settings.
type RelayConfig struct {
	Endpoint  string        `env:"RELAY_ENDPOINT" yaml:"endpoint"`
	Recipient string        `env:"RELAY_TO_EMAIL" yaml:"recipient"`
	Timeout   time.Duration `yaml:"timeout"`
}

// CacheConfig holds the Redis snapshot cache settings.
type CacheConfig struct {
	Enabled     bool          `env:"CACHE_ENABLED"  yaml:"enabled"`
	Address     string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password    string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB          int           `env:"REDIS_DB"       yaml:"db"`
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
}

// DatabaseConfig holds the PostgreSQL lead store configuration.
type DatabaseConfig struct {
	Enabled  bool   `env:"LEADS_DB_ENABLED"  yaml:"enabled"`
	Host     string `env:"POSTGRES_LEADS_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_LEADS_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_LEADS_USER"     yaml:"user"`
	Password string `env:"POSTGRES_LEADS_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_LEADS_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_LEADS_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// URL returns the connection settings as a postgres:// URL, the form the
// migration tooling expects.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode,
	)
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path and applies defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	// Re-apply env overrides after defaults (env always wins).
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}

	if c.Site.Name == "" {
		c.Site.Name = defaultSiteName
	}
	if c.Site.Description == "" {
		c.Site.Description = defaultSiteDescription
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = defaultSiteBaseURL
	}

	if c.CMS.PageSize == 0 {
		c.CMS.PageSize = defaultCMSPageSize
	}
	if c.CMS.Timeout == 0 {
		c.CMS.Timeout = defaultCMSTimeout
	}

	if c.Relay.Endpoint == "" {
		c.Relay.Endpoint = defaultRelayEndpoint
	}
	if c.Relay.Timeout == 0 {
		c.Relay.Timeout = defaultRelayTimeout
	}

	if c.Cache.Address == "" {
		c.Cache.Address = defaultRedisAddress
	}
	if c.Cache.SnapshotTTL == 0 {
		c.Cache.SnapshotTTL = defaultSnapshotTTL
	}

	if c.Database.Host == "" {
		c.Database.Host = defaultDBHost
	}
	if c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
	if c.Database.User == "" {
		c.Database.User = defaultDBUser
	}
	if c.Database.Database == "" {
		c.Database.Database = defaultDBName
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = defaultDBSSLMode
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaultLoggingLevel
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if c.Site.BaseURL == "" {
		return &ValidationError{Field: "site.base_url", Message: "is required"}
	}
	if c.Relay.Recipient == "" {
		return &ValidationError{Field: "relay.recipient", Message: "is required"}
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Database.Enabled {
		if err := ValidatePort("database.port", c.Database.Port); err != nil {
			return err
		}
	}
	return nil
}
