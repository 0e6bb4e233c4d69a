package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":3000", cfg.Address)
	assert.Equal(t, "hp_session", cfg.Session.CookieName)
	assert.True(t, cfg.Security.CSRFEnabled)

	// CSRF on without a secret is rejected.
	assert.ErrorIs(t, cfg.Validate(), ErrCSRFSecretRequired)

	cfg.Security.CSRFSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestDevelopmentConfig_Valid(t *testing.T) {
	cfg := DevelopmentConfig()
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
address: ":8080"
security:
  csrf_enabled: true
  csrf_secret: "a-secret-that-is-long-enough-123456"
session:
  ttl: 10m
log:
  backend: zap
  level: warn
content:
  path: ./site.yaml
  watch: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "hp_session", cfg.Session.CookieName)
	assert.Equal(t, "zap", cfg.Log.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Content.Watch)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: [unclosed"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddr:       ":9000",
		EnvLogLevel:   "DEBUG",
		EnvCSRFSecret: "from-env",
	}
	cfg := DefaultConfig()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	assert.Equal(t, ":9000", cfg.Address)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "from-env", cfg.Security.CSRFSecret)
}

func TestValidate(t *testing.T) {
	base := DevelopmentConfig()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no address", func(c *Config) { c.Address = "" }, ErrAddressRequired},
		{"zero message size", func(c *Config) { c.MaxMessageSize = 0 }, ErrInvalidMaxMessageSize},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, ErrInvalidSessionTTL},
		{"no cookie", func(c *Config) { c.Session.CookieName = "" }, ErrCookieNameRequired},
		{"short secret", func(c *Config) {
			c.Security.CSRFEnabled = true
			c.Security.CSRFSecret = "short"
		}, ErrCSRFSecretRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}
