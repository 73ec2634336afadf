package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Backend.BaseURL)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.StubBackend)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
	assert.Equal(t, "localhost:8080", cfg.Address())
	assert.Equal(t, language.French, cfg.Catalog().Tag)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setup       func()
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "explicit values",
			setup: func() {
				viper.Set("backend.base_url", "https://prestigia-agency.com/")
				viper.Set("server.port", 9090)
				viper.Set("locale", "en-US")
				viper.Set("log.level", "DEBUG")
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://prestigia-agency.com", cfg.Backend.BaseURL)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, language.English, cfg.Catalog().Tag)
				assert.Equal(t, logging.LevelDebug, cfg.LogLevel())
			},
		},
		{
			name: "invalid port type",
			setup: func() {
				viper.Set("server.port", "invalid_port")
			},
			expectError: true,
		},
		{
			name: "relative base url",
			setup: func() {
				viper.Set("backend.base_url", "/api")
			},
			expectError: true,
		},
		{
			name: "several invalid fields",
			setup: func() {
				viper.Set("server.port", 70000)
				viper.Set("log.format", "xml")
				viper.Set("log.level", "chatty")
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			tt.setup()

			cfg, err := Load()
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, contacterrors.IsType(err, contacterrors.ErrorTypeConfig))
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := &Config{
		Backend: BackendConfig{BaseURL: "nope"},
		Server:  ServerConfig{Host: "", Port: -1},
		Log:     LogConfig{Level: "info", Format: "text"},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var ce *contacterrors.ContactError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"backend.base_url", "server.port", "server.host"}, ce.Context["fields"])
}

func TestLoadFromEnvironment(t *testing.T) {
	viper.Reset()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	t.Setenv("PRESTIGIA_BACKEND_BASE_URL", "https://staging.prestigia-agency.com")
	t.Setenv("PRESTIGIA_SERVER_PORT", "8181")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.prestigia-agency.com", cfg.Backend.BaseURL)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, ".prestigia.yml")
	content := `backend:
  base_url: https://prestigia-agency.com
server:
  port: 4000
  stub_backend: true
locale: en
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.True(t, cfg.Server.StubBackend)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, language.English, cfg.Catalog().Tag)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	viper.Reset()
	path := filepath.Join(t.TempDir(), ".prestigia.yml")
	require.NoError(t, os.WriteFile(path, []byte("locale: fr\n"), 0o644))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	reloaded := make(chan *Config, 4)
	Watch(func(cfg *Config, err error) {
		if err != nil {
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("locale: en\nlog:\n  level: debug\n"), 0o644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "en", cfg.Locale)
		assert.Equal(t, logging.LevelDebug, cfg.LogLevel())
	case <-time.After(5 * time.Second):
		t.Fatal("configuration change was not picked up")
	}
}
