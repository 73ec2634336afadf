//go:build property
// +build property

package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
)

func validConfig() Config {
	return Config{
		Backend: BackendConfig{BaseURL: "http://localhost:3000"},
		Server:  ServerConfig{Host: "localhost", Port: 8080},
		Locale:  "fr",
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// TestValidateProperties checks the port range and the field report.
func TestValidateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ports inside the range are accepted", prop.ForAll(
		func(port int) bool {
			cfg := validConfig()
			cfg.Server.Port = port
			return cfg.Validate() == nil
		},
		gen.IntRange(0, 65535),
	))

	properties.Property("ports outside the range name server.port", prop.ForAll(
		func(port int) bool {
			cfg := validConfig()
			cfg.Server.Port = port
			err := cfg.Validate()

			var ce *contacterrors.ContactError
			if !errors.As(err, &ce) || ce.Type != contacterrors.ErrorTypeConfig {
				return false
			}
			fields, _ := ce.Context["fields"].([]string)
			return len(fields) == 1 && fields[0] == "server.port"
		},
		gen.OneGenOf(gen.IntRange(-100000, -1), gen.IntRange(65536, 1000000)),
	))

	properties.Property("any http(s) host is a valid base url", prop.ForAll(
		func(scheme, host string, port int) bool {
			cfg := validConfig()
			cfg.Backend.BaseURL = fmt.Sprintf("%s://%s.example:%d", scheme, host, port)
			return cfg.Validate() == nil
		},
		gen.OneConstOf("http", "https"),
		gen.Identifier(),
		gen.IntRange(1, 65535),
	))

	properties.TestingRun(t)
}
