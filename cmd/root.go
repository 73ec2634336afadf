// Package cmd provides the prestigia-contact command-line interface.
//
// Configuration is resolved with the following precedence:
//  1. Command-line flags (--config, --base-url, --port, ...)
//  2. PRESTIGIA_CONFIG_FILE: path to a configuration file
//  3. Individual environment variables (PRESTIGIA_BACKEND_BASE_URL, PRESTIGIA_SERVER_PORT, ...)
//  4. .prestigia.yml in the current directory
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prestigia-agency/contact/internal/config"
	"github.com/prestigia-agency/contact/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "prestigia-contact",
	Short: "Contact form client and preview server for the Prestigia Agency site",
	Long: `prestigia-contact sends contact form submissions to the site's /api/contact
endpoint and opens the agency's quick-contact channels.

Quick Start:
  prestigia-contact submit --name "Amina" --email amina@example.com \
    --subject "Refonte" --message "Bonjour"
  prestigia-contact open call       Open the WhatsApp chat
  prestigia-contact serve           Preview the contact section in a browser
  prestigia-contact config show     Print the resolved configuration`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .prestigia.yml, can also use PRESTIGIA_CONFIG_FILE env var)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("base-url", "http://localhost:3000", "site the /api/contact endpoint is resolved against")

	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("backend.base_url", flags.Lookup("base-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".prestigia")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or unreadable file leaves the defaults in place.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the configuration and the logger it describes. Logs go to
// stderr so stdout stays clean for command output.
func loadConfig(stderr io.Writer) (*config.Config, *logging.ContactLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := logging.DefaultConfig()
	opts.Output = stderr
	opts.Component = "cli"

	return cfg, cfg.NewLogger(opts), nil
}
