package core

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gabrielmiguelok/healthpredictor/pkg/logging"
)

// Environment variables that override file configuration.
const (
	EnvAddr       = "HEALTHPREDICTOR_ADDR"
	EnvLogLevel   = "HEALTHPREDICTOR_LOG_LEVEL"
	EnvCSRFSecret = "HEALTHPREDICTOR_CSRF_SECRET"
)

// TimeoutConfig bounds the time spent on each kind of operation.
type TimeoutConfig struct {
	Request          time.Duration `yaml:"request"`
	ComponentMount   time.Duration `yaml:"component_mount"`
	ComponentEvent   time.Duration `yaml:"component_event"`
	WebSocketRead    time.Duration `yaml:"websocket_read"`
	WebSocketWrite   time.Duration `yaml:"websocket_write"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// DefaultTimeoutConfig returns production timeouts.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Request:          30 * time.Second,
		ComponentMount:   5 * time.Second,
		ComponentEvent:   3 * time.Second,
		WebSocketRead:    60 * time.Second,
		WebSocketWrite:   10 * time.Second,
		GracefulShutdown: 30 * time.Second,
	}
}

// RelaxedTimeoutConfig returns generous timeouts for local development.
func RelaxedTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Request:          120 * time.Second,
		ComponentMount:   30 * time.Second,
		ComponentEvent:   30 * time.Second,
		WebSocketRead:    300 * time.Second,
		WebSocketWrite:   30 * time.Second,
		GracefulShutdown: 5 * time.Second,
	}
}

// SecurityConfig configures CSRF, origin checks and response headers.
type SecurityConfig struct {
	CSRFEnabled     bool          `yaml:"csrf_enabled"`
	CSRFSecret      string        `yaml:"csrf_secret"`
	CSRFTokenExpiry time.Duration `yaml:"csrf_token_expiry"`

	// AllowedOrigins lists extra origins accepted for WebSocket upgrades.
	// Same-origin is always accepted.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// InsecureDevMode disables origin checks. Never enable in production.
	InsecureDevMode bool `yaml:"insecure_dev_mode"`

	SecureHeaders bool `yaml:"secure_headers"`
}

// DefaultSecurityConfig returns the production security settings.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		CSRFEnabled:     true,
		CSRFTokenExpiry: 24 * time.Hour,
		SecureHeaders:   true,
	}
}

// DevelopmentSecurityConfig relaxes origin checks and disables CSRF.
func DevelopmentSecurityConfig() SecurityConfig {
	return SecurityConfig{
		CSRFEnabled:     false,
		CSRFTokenExpiry: 24 * time.Hour,
		AllowedOrigins:  []string{"*"},
		InsecureDevMode: true,
	}
}

// SessionConfig controls how long fallback sessions and their form state live.
type SessionConfig struct {
	CookieName      string        `yaml:"cookie_name"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	MaxSessions     int           `yaml:"max_sessions"`
}

// DefaultSessionConfig returns a 30 minute session lifetime.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName:      "hp_session",
		TTL:             30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxSessions:     10000,
	}
}

// ContentConfig points at an optional site content override.
type ContentConfig struct {
	// Path of a YAML file replacing the embedded site content. Empty means
	// use the embedded copy.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Config is the full server configuration.
type Config struct {
	Address        string         `yaml:"address"`
	Debug          bool           `yaml:"debug"`
	MaxMessageSize int64          `yaml:"max_message_size"`
	Timeouts       TimeoutConfig  `yaml:"timeouts"`
	Security       SecurityConfig `yaml:"security"`
	Session        SessionConfig  `yaml:"session"`
	Content        ContentConfig  `yaml:"content"`
	Log            logging.Config `yaml:"log"`
}

// DefaultConfig returns the production configuration listening on :3000.
func DefaultConfig() Config {
	return Config{
		Address:        ":3000",
		MaxMessageSize: 64 * 1024,
		Timeouts:       DefaultTimeoutConfig(),
		Security:       DefaultSecurityConfig(),
		Session:        DefaultSessionConfig(),
		Log:            logging.DefaultConfig(),
	}
}

// DevelopmentConfig returns a debug configuration with relaxed security.
func DevelopmentConfig() Config {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Timeouts = RelaxedTimeoutConfig()
	cfg.Security = DevelopmentSecurityConfig()
	cfg.Log.Level = "debug"
	return cfg
}

// LoadConfig reads a YAML file on top of DefaultConfig, then applies
// environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Address = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvCSRFSecret); ok && v != "" {
		c.Security.CSRFSecret = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Address == "" {
		return ErrAddressRequired
	}
	if c.Security.CSRFEnabled && len(c.Security.CSRFSecret) < 32 {
		return ErrCSRFSecretRequired
	}
	if c.MaxMessageSize <= 0 {
		return ErrInvalidMaxMessageSize
	}
	if c.Session.TTL <= 0 {
		return ErrInvalidSessionTTL
	}
	if c.Session.CookieName == "" {
		return ErrCookieNameRequired
	}
	return nil
}

// Configuration errors.
var (
	ErrAddressRequired       = errors.New("address is required")
	ErrCSRFSecretRequired    = errors.New("CSRF secret of at least 32 bytes is required when CSRF is enabled")
	ErrInvalidMaxMessageSize = errors.New("max_message_size must be positive")
	ErrInvalidSessionTTL     = errors.New("session ttl must be positive")
	ErrCookieNameRequired    = errors.New("session cookie_name is required")
)
