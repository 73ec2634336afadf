package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/prestigia-agency/contact/internal/contact"
	"github.com/prestigia-agency/contact/internal/quickcontact"
)

// formFlags holds the contact form fields given on the command line.
type formFlags struct {
	name    string
	email   string
	phone   string
	subject string
	message string
}

func addFormFlags(cmd *cobra.Command, f *formFlags) {
	cmd.Flags().StringVar(&f.name, contact.FieldName, "", "full name (required)")
	cmd.Flags().StringVar(&f.email, contact.FieldEmail, "", "email address (required)")
	cmd.Flags().StringVar(&f.phone, contact.FieldPhone, "", "phone number")
	cmd.Flags().StringVar(&f.subject, contact.FieldSubject, "", "subject (required)")
	cmd.Flags().StringVar(&f.message, contact.FieldMessage, "", `message body, or @file to read it from a file, or "-" for stdin`)
}

func (f *formFlags) input() contact.FormInput {
	return contact.FormInput{
		Name:    f.name,
		Email:   f.email,
		Phone:   f.phone,
		Subject: f.subject,
		Message: f.message,
	}
}

// channelValue is a pflag.Value accepting quick-contact channel names and
// their aliases.
type channelValue struct {
	channel quickcontact.Channel
}

var _ pflag.Value = (*channelValue)(nil)

func (v *channelValue) String() string { return string(v.channel) }

func (v *channelValue) Set(s string) error {
	ch, err := quickcontact.ParseChannel(s)
	if err != nil {
		return err
	}
	v.channel = ch
	return nil
}

func (v *channelValue) Type() string { return "channel" }

func channelNames() []string {
	names := make([]string, 0, len(quickcontact.Channels))
	for _, ch := range quickcontact.Channels {
		names = append(names, string(ch))
	}
	return names
}

// addFlagValidation wraps a flag so invalid values are rejected while parsing.
func addFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}
	flag.Value = &validatingValue{Value: flag.Value, validator: validator}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if err := v.validator(val); err != nil {
		return err
	}
	return v.Value.Set(val)
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid port number: %s", s)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", port)
	}
	return nil
}
