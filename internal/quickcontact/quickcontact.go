// Package quickcontact dispatches the quick-contact actions of the contact
// section: compose an email, open the agency's WhatsApp chat, open the office
// location on a map. Each action is stateless and goes through a Platform that
// may have no browsing surface, in which case the action is a no-op.
package quickcontact

import (
	"context"
	"fmt"
	"strings"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/logging"
)

// Fixed targets.
const (
	EmailAddress  = "contact@prestigia-agency.com"
	EmailURL      = "mailto:" + EmailAddress
	WhatsAppPhone = "212652768993"
	WhatsAppURL   = "https://wa.me/" + WhatsAppPhone
	MapURL        = "https://maps.app.goo.gl/KkHCNmUBQxJYZGxh8"

	// WindowFeatures is passed when a target opens in a new context.
	WindowFeatures = "noopener,noreferrer"
)

// Channel names a quick-contact action.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelCall  Channel = "call"
	ChannelMap   Channel = "map"
)

// Channels lists every channel in display order.
var Channels = []Channel{ChannelEmail, ChannelCall, ChannelMap}

// ParseChannel maps a name onto a Channel.
func ParseChannel(name string) (Channel, error) {
	switch Channel(strings.ToLower(strings.TrimSpace(name))) {
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelCall, "whatsapp", "phone":
		return ChannelCall, nil
	case ChannelMap, "location":
		return ChannelMap, nil
	default:
		return "", contacterrors.NewValidationError(contacterrors.ErrCodeUnknownChannel,
			fmt.Sprintf("unknown quick-contact channel %q", name)).
			WithContext("channel", name)
	}
}

// Target is where a channel leads and how it is opened.
type Target struct {
	URL string
	// NewContext opens the URL in a new window or tab instead of navigating
	// the current one.
	NewContext bool
}

// TargetFor returns the fixed target of a channel.
func TargetFor(ch Channel) (Target, bool) {
	switch ch {
	case ChannelEmail:
		return Target{URL: EmailURL}, true
	case ChannelCall:
		return Target{URL: WhatsAppURL, NewContext: true}, true
	case ChannelMap:
		return Target{URL: MapURL, NewContext: true}, true
	default:
		return Target{}, false
	}
}

// Platform is the execution context's navigation capability.
type Platform interface {
	// HasBrowsingSurface reports whether Navigate and Open can be used.
	HasBrowsingSurface() bool
	// Navigate replaces the current context's location.
	Navigate(ctx context.Context, url string) error
	// Open shows url in a new context.
	Open(ctx context.Context, url, features string) error
}

// Recorder receives dispatch measurements.
type Recorder interface {
	ObserveDispatch(channel, result string)
}

// Dispatch results reported to the Recorder.
const (
	ResultOpened  = "opened"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// Dispatcher runs quick-contact actions against a Platform.
type Dispatcher struct {
	platform Platform
	logger   logging.Logger
	recorder Recorder
}

// NewDispatcher creates a dispatcher. A nil platform behaves like Headless.
func NewDispatcher(platform Platform, logger logging.Logger, recorder Recorder) *Dispatcher {
	if platform == nil {
		platform = Headless{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Dispatcher{
		platform: platform,
		logger:   logger.WithComponent("quickcontact"),
		recorder: recorder,
	}
}

// Email opens the mail composer addressed to the agency.
func (d *Dispatcher) Email(ctx context.Context) error {
	return d.Dispatch(ctx, ChannelEmail)
}

// Call opens the agency's WhatsApp chat in a new context.
func (d *Dispatcher) Call(ctx context.Context) error {
	return d.Dispatch(ctx, ChannelCall)
}

// Map opens the office location in a new context.
func (d *Dispatcher) Map(ctx context.Context) error {
	return d.Dispatch(ctx, ChannelMap)
}

// Dispatch runs the action of ch. Without a browsing surface it does nothing
// and returns nil.
func (d *Dispatcher) Dispatch(ctx context.Context, ch Channel) error {
	target, ok := TargetFor(ch)
	if !ok {
		return contacterrors.NewValidationError(contacterrors.ErrCodeUnknownChannel,
			fmt.Sprintf("unknown quick-contact channel %q", ch))
	}

	if !d.platform.HasBrowsingSurface() {
		d.logger.Debug(ctx, "No browsing surface, skipping quick contact", "channel", ch)
		d.record(ch, ResultSkipped)
		return nil
	}

	var err error
	if target.NewContext {
		err = d.platform.Open(ctx, target.URL, WindowFeatures)
	} else {
		err = d.platform.Navigate(ctx, target.URL)
	}
	if err != nil {
		d.logger.Warn(ctx, err, "Quick contact failed", "channel", ch, "url", target.URL)
		d.record(ch, ResultFailed)
		return err
	}

	d.logger.Info(ctx, "Quick contact opened", "channel", ch, "url", target.URL)
	d.record(ch, ResultOpened)

	return nil
}

func (d *Dispatcher) record(ch Channel, result string) {
	if d.recorder != nil {
		d.recorder.ObserveDispatch(string(ch), result)
	}
}
