// Package config loads the contact widget configuration with Viper from the
// .prestigia.yml file, PRESTIGIA_ environment variables and command-line flags.
//
// Keys:
//
//	backend.base_url  site the fixed /api/contact path is resolved against
//	server.host       preview server bind host
//	server.port       preview server port
//	server.stub_backend  mount a stub /api/contact on the preview server
//	locale            status message language (fr, en, or an Accept-Language value)
//	log.level         debug, info, warn, error
//	log.format        text or json
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/prestigia-agency/contact/internal/contact"
	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/logging"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "PRESTIGIA"

type Config struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend" json:"backend"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server" json:"server"`
	Locale  string        `mapstructure:"locale" yaml:"locale" json:"locale"`
	Log     LogConfig     `mapstructure:"log" yaml:"log" json:"log"`
}

type BackendConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host" yaml:"host" json:"host"`
	Port        int    `mapstructure:"port" yaml:"port" json:"port"`
	StubBackend bool   `mapstructure:"stub_backend" yaml:"stub_backend" json:"stub_backend"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Defaults used when nothing else sets a key.
var defaults = map[string]interface{}{
	"backend.base_url":    "http://localhost:3000",
	"server.host":         "localhost",
	"server.port":         8080,
	"server.stub_backend": false,
	"locale":              "fr",
	"log.level":           "info",
	"log.format":          "text",
}

// SetDefaults registers the defaults on the global viper instance. Keys must
// be known to viper for AutomaticEnv to apply during Unmarshal.
func SetDefaults() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// Load unmarshals and validates the global viper configuration.
func Load() (*Config, error) {
	SetDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, contacterrors.NewConfigError(contacterrors.ErrCodeConfigInvalid,
			"failed to decode configuration: "+err.Error())
	}

	config.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(config.Backend.BaseURL), "/")
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))
	config.Log.Format = strings.ToLower(strings.TrimSpace(config.Log.Format))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs contacterrors.ValidationErrorCollection

	if _, err := contact.ResolveEndpoint(c.Backend.BaseURL); err != nil {
		errs.AddField("backend.base_url", "must be an absolute http(s) url")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs.AddField("server.port", "must be between 0 and 65535")
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		errs.AddField("server.host", "cannot be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs.AddField("log.level", err.Error())
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs.AddField("log.format", fmt.Sprintf("unsupported format %q (text, json)", c.Log.Format))
	}

	if errs.HasErrors() {
		return contacterrors.NewConfigError(contacterrors.ErrCodeConfigInvalid, errs.Error()).
			WithContext("fields", errs.Fields())
	}

	return nil
}

// Address returns the preview server listen address.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Catalog returns the status texts for the configured locale.
func (c *Config) Catalog() contact.Catalog {
	return contact.CatalogForLocale(c.Locale)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() logging.LogLevel {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// NewLogger builds the logger described by the configuration.
func (c *Config) NewLogger(opts *logging.LoggerConfig) *logging.ContactLogger {
	if opts == nil {
		opts = logging.DefaultConfig()
	}
	opts.Level = c.LogLevel()
	opts.Format = c.Log.Format

	return logging.NewLogger(opts)
}
