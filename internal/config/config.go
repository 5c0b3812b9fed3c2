// Package config provides centralized configuration management for the console.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Console  ConsoleConfig
	Notify   NotifyConfig
	Seed     SeedConfig
	Export   ExportConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// ConsoleConfig holds table view and pricing settings.
type ConsoleConfig struct {
	// PageSize is the number of rows per page (default: 5)
	PageSize int `env:"CONSOLE_PAGE_SIZE" default:"5"`

	// TaxRate is the fraction of an order subtotal charged as tax (default: 0.10)
	TaxRate float64 `env:"CONSOLE_TAX_RATE" default:"0.10"`

	// ShippingFee is the flat shipping charge per order (default: 10)
	ShippingFee float64 `env:"CONSOLE_SHIPPING_FEE" default:"10"`
}

// NotifyConfig holds notification queue settings.
type NotifyConfig struct {
	// DefaultLifetime is how long a notification stays visible; 0 keeps it until dismissed (default: 3s)
	DefaultLifetime time.Duration `env:"NOTIFY_DEFAULT_LIFETIME" default:"3s"`
}

// SeedConfig holds initial dataset settings.
type SeedConfig struct {
	// File is a YAML dataset to load instead of the embedded default
	File string `env:"SEED_FILE"`
}

// ExportConfig holds CSV export settings.
type ExportConfig struct {
	// MaxConcurrent is the maximum number of exports rendered at once (default: 4)
	MaxConcurrent int `env:"EXPORT_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an export slot (default: 5s)
	MaxWaitTime time.Duration `env:"EXPORT_MAX_WAIT_TIME" default:"5s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// ExportLimit is requests per minute for export endpoints (default: 10)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// AuditConfig holds audit log retention settings.
type AuditConfig struct {
	// MaxEntries is the number of audit entries kept in memory (default: 10000)
	MaxEntries int `env:"AUDIT_MAX_ENTRIES" default:"10000"`

	// PruneInterval is how often old entries are dropped (default: 1h)
	PruneInterval time.Duration `env:"AUDIT_PRUNE_INTERVAL" default:"1h"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
