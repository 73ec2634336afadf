package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prestigia-agency/contact/internal/quickcontact"
)

var openHeadless bool

// newPlatform selects where quick-contact targets are opened.
var newPlatform = func(headless bool) quickcontact.Platform {
	if headless {
		return quickcontact.Headless{}
	}
	return quickcontact.Desktop{}
}

var openCmd = &cobra.Command{
	Use:   "open email|call|map",
	Short: "Open a quick-contact channel",
	Long: `Open one of the agency's quick-contact channels with the system's default
handler:

  email   mail composer addressed to ` + quickcontact.EmailAddress + `
  call    WhatsApp chat with +` + quickcontact.WhatsAppPhone + ` (alias: whatsapp, phone)
  map     office location on the map (alias: location)

Without a desktop session nothing is opened and the command succeeds.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: channelNames(),
	RunE:      runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)

	openCmd.Flags().BoolVar(&openHeadless, "headless", false, "never launch anything, only report the target")
}

type lastDispatch struct {
	result string
}

func (l *lastDispatch) ObserveDispatch(_, result string) {
	l.result = result
}

func runOpen(cmd *cobra.Command, args []string) error {
	var channel channelValue
	if err := channel.Set(args[0]); err != nil {
		return err
	}

	_, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	recorder := &lastDispatch{}
	dispatcher := quickcontact.NewDispatcher(newPlatform(openHeadless), logger, recorder)
	if err := dispatcher.Dispatch(cmd.Context(), channel.channel); err != nil {
		return err
	}

	target, _ := quickcontact.TargetFor(channel.channel)
	switch recorder.result {
	case quickcontact.ResultOpened:
		fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", target.URL)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "No browsing surface; %s not opened\n", target.URL)
	}
	return nil
}
