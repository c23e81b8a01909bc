// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	LogStore  ClientConfig    `koanf:"logstore"`
	Capture   CaptureConfig   `koanf:"capture"`
	Dispatch  DispatchConfig  `koanf:"dispatch"`
	Retention RetentionConfig `koanf:"retention"`
	SMTP      SMTPConfig      `koanf:"smtp"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds downstream HTTP client settings. The only downstream of
// this service is the external log store, configured under the "logstore" key.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limit settings. A zero
// RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// CaptureConfig holds request/response capture settings. The values are read
// once at startup and injected into the capture middleware; they never change
// while the process runs.
type CaptureConfig struct {
	Enabled         bool   `koanf:"enabled"`
	LogRequestBody  bool   `koanf:"log_request_body"`
	LogResponseBody bool   `koanf:"log_response_body"`
	MaxBodySize     int    `koanf:"max_body_size"`
	ServiceName     string `koanf:"service_name"`
}

// DispatchConfig holds settings for the asynchronous log entry dispatcher.
type DispatchConfig struct {
	QueueSize       int           `koanf:"queue_size"`
	SendTimeout     time.Duration `koanf:"send_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// RetentionConfig holds settings for the scheduled log cleanup job.
// Schedule is a cron expression; Days is the retention threshold.
type RetentionConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Schedule string `koanf:"schedule"`
	Days     int    `koanf:"days"`
}

// SMTPConfig holds settings for the outbound mail transport.
type SMTPConfig struct {
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	Username       string `koanf:"username"`
	Password       string `koanf:"password"`
	FromAddress    string `koanf:"from_address"`
	FromName       string `koanf:"from_name"`
	SupportAddress string `koanf:"support_address"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
