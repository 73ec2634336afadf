package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prestigia-agency/contact/internal/config"
	"github.com/prestigia-agency/contact/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a preview of the contact section",
	Long: `Serve the contact section with a live submission controller.

The form posts to the preview server, which runs the submission against the
configured backend. Quick-contact links redirect to the agency's channels and
/ws streams the controller state to open pages. Editing the config file
reloads the log level and the locale.

Examples:
  prestigia-contact serve                        # backend from config
  prestigia-contact serve --stub-backend         # answer /api/contact locally
  prestigia-contact serve --port 9090 --locale auto`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "port to serve on")
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().Bool("stub-backend", false, "mount a stub /api/contact and submit to it")
	serveCmd.Flags().String("locale", "fr", `status message language (fr, en, or "auto" to follow Accept-Language)`)
	addFlagValidation(serveCmd, "port", validatePort)

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.stub_backend", serveCmd.Flags().Lookup("stub-backend"))
	_ = viper.BindPFlag("locale", serveCmd.Flags().Lookup("locale"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if viper.ConfigFileUsed() != "" {
		config.Watch(func(reloaded *config.Config, err error) {
			if err != nil {
				logger.Warn(ctx, err, "Ignoring invalid configuration change")
				return
			}
			logger.SetLevel(reloaded.LogLevel())
			srv.Apply(reloaded)
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving contact preview at http://%s\n", cfg.Address())
	if cfg.Server.StubBackend {
		fmt.Fprintln(cmd.OutOrStdout(), "Submissions go to the stub backend")
	}

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
