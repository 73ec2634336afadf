package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prestigia-agency/contact/internal/contact"
	contacterrors "github.com/prestigia-agency/contact/internal/errors"
)

var (
	submitFlags  formFlags
	submitOutput string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a contact form submission",
	Long: `Send one contact form submission to the backend and print the status
message a visitor would see.

The command exits non-zero unless the backend accepts the submission.

Examples:
  prestigia-contact submit --name "Amina Benali" --email amina@example.com \
    --subject "Refonte du site" --message "Bonjour"
  prestigia-contact submit ... --message @message.txt
  echo "Bonjour" | prestigia-contact submit ... --message -
  prestigia-contact submit ... --output json`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	addFormFlags(submitCmd, &submitFlags)
	submitCmd.Flags().StringVarP(&submitOutput, "output", "o", "text", "output format (text, json)")
}

type submitReport struct {
	AttemptID  string `json:"attempt_id"`
	Outcome    string `json:"outcome"`
	Status     string `json:"status"`
	HTTPStatus int    `json:"http_status,omitempty"`
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	if submitOutput != "text" && submitOutput != "json" {
		return fmt.Errorf("unsupported output format: %s (supported: text, json)", submitOutput)
	}

	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	message, err := readMessage(submitFlags.message, cmd.InOrStdin())
	if err != nil {
		return err
	}
	input := submitFlags.input()
	input.Message = message

	// The required attributes of the form, enforced before anything is sent.
	if missing := input.Missing(); len(missing) > 0 {
		var errs contacterrors.ValidationErrorCollection
		for _, field := range missing {
			errs.AddField(field, "required")
		}
		return errs.ToContactError()
	}

	controller, err := contact.NewController(contact.NewMemorySurface(input),
		contact.WithBaseURL(cfg.Backend.BaseURL),
		contact.WithCatalog(cfg.Catalog()),
		contact.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := controller.Submit(cmd.Context())
	if err != nil {
		return err
	}
	contacterrors.NewErrorHandler(logger).Handle(cmd.Context(), result.Err)

	out := cmd.OutOrStdout()
	if submitOutput == "json" {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(submitReport{
			AttemptID:  result.AttemptID,
			Outcome:    string(result.Outcome),
			Status:     result.Status.Text,
			HTTPStatus: result.HTTPStatus,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, result.Status.Text)
	}

	if result.Outcome != contact.OutcomeSuccess {
		return fmt.Errorf("submission failed: %s", result.Outcome)
	}
	return nil
}

// readMessage resolves "@path" to the file contents and "-" to stdin.
func readMessage(value string, stdin io.Reader) (string, error) {
	switch {
	case value == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read message from stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	case strings.HasPrefix(value, "@"):
		filename := strings.TrimPrefix(value, "@")
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read message file %s: %w", filename, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return value, nil
	}
}
