package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/logging"
)

const (
	// EndpointPath is the backend route that accepts submissions.
	EndpointPath = "/api/contact"

	// ContentType is declared on every submission.
	ContentType = "application/json; charset=utf-8"
)

// ErrSubmissionInProgress is returned by Submit while another attempt is
// running. Match it with errors.Is.
var ErrSubmissionInProgress = contacterrors.NewBusyError(
	contacterrors.ErrCodeSubmissionInProgress,
	"a submission is already in progress",
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result reports how one submission cycle ended.
type Result struct {
	AttemptID  string
	Outcome    Outcome
	Status     Status
	HTTPStatus int
	// Err is the recovered failure, nil on success.
	Err error
}

// Controller runs submission cycles for one contact form. It owns the
// Idle/Submitting state and the visible status message.
type Controller struct {
	endpoint string
	client   Doer
	surface  Surface
	logger   logging.Logger
	recorder Recorder
	newID    func() string

	mu        sync.Mutex
	state     State
	status    Status
	catalog   Catalog
	observers []Observer
}

// Option configures a Controller.
type Option func(*Controller) error

// WithBaseURL sets the site the endpoint path is resolved against.
func WithBaseURL(base string) Option {
	return func(c *Controller) error {
		endpoint, err := ResolveEndpoint(base)
		if err != nil {
			return err
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(client Doer) Option {
	return func(c *Controller) error {
		if client == nil {
			return contacterrors.NewConfigError(contacterrors.ErrCodeConfigInvalid, "http client cannot be nil")
		}
		c.client = client
		return nil
	}
}

// WithCatalog selects the status texts.
func WithCatalog(catalog Catalog) Option {
	return func(c *Controller) error {
		c.catalog = catalog
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *Controller) error {
		if logger != nil {
			c.logger = logger.WithComponent("submission")
		}
		return nil
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(c *Controller) error {
		c.recorder = recorder
		return nil
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(observer Observer) Option {
	return func(c *Controller) error {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
		return nil
	}
}

// WithIDGenerator overrides the attempt id source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) error {
		if newID != nil {
			c.newID = newID
		}
		return nil
	}
}

// NewController creates a controller bound to surface.
func NewController(surface Surface, opts ...Option) (*Controller, error) {
	if surface == nil {
		return nil, contacterrors.NewConfigError(contacterrors.ErrCodeMissingSurface, "input surface cannot be nil")
	}

	c := &Controller{
		endpoint: EndpointPath,
		client:   &http.Client{},
		surface:  surface,
		logger:   logging.NewNopLogger(),
		catalog:  French,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ResolveEndpoint joins the fixed endpoint path onto an absolute base URL.
func ResolveEndpoint(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", contacterrors.NewConfigError(contacterrors.ErrCodeConfigInvalid,
			fmt.Sprintf("invalid base url %q: %v", base, err))
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", contacterrors.NewConfigError(contacterrors.ErrCodeConfigInvalid,
			fmt.Sprintf("base url %q must be an absolute http(s) url", base))
	}

	return u.ResolveReference(&url.URL{Path: EndpointPath}).String(), nil
}

// Endpoint returns the URL submissions are posted to.
func (c *Controller) Endpoint() string {
	return c.endpoint
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether an attempt is running. Presentation layers disable the
// submit affordance while it is true.
func (c *Controller) Busy() bool {
	return c.State() == StateSubmitting
}

// Status returns the visible status message.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SetCatalog switches the status texts for later attempts.
func (c *Controller) SetCatalog(catalog Catalog) {
	c.mu.Lock()
	c.catalog = catalog
	c.mu.Unlock()
}

// Subscribe registers an observer for later attempts.
func (c *Controller) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	c.mu.Lock()
	c.observers = append(c.observers, observer)
	c.mu.Unlock()
}

// AttemptOption adjusts a single Submit call.
type AttemptOption func(*attempt)

type attempt struct {
	input   *FormInput
	catalog *Catalog
}

// WithInput writes in to the surface as the attempt starts, under the same
// guard that flips Idle to Submitting. A refused attempt leaves the surface
// untouched. The surface must implement Stager.
func WithInput(in FormInput) AttemptOption {
	return func(a *attempt) { a.input = &in }
}

// WithAttemptCatalog selects the status texts for this attempt only.
func WithAttemptCatalog(catalog Catalog) AttemptOption {
	return func(a *attempt) { a.catalog = &catalog }
}

// Stage writes in to the surface while no attempt is running. It fails with
// ErrSubmissionInProgress otherwise and the surface keeps the running
// attempt's values.
func (c *Controller) Stage(in FormInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return ErrSubmissionInProgress
	}
	return c.stageLocked(in)
}

func (c *Controller) stageLocked(in FormInput) error {
	stager, ok := c.surface.(Stager)
	if !ok {
		return contacterrors.NewConfigError(contacterrors.ErrCodeMissingSurface, "input surface cannot be written")
	}
	stager.Set(in)
	return nil
}

// Submit runs one submission cycle with the surface's current values, or with
// the input given through WithInput.
//
// Request failures are not returned: they end in an error status that is also
// reported in the Result. The returned error is non-nil only when the attempt
// could not start: ErrSubmissionInProgress, or a config error when WithInput
// targets a surface that cannot be written.
func (c *Controller) Submit(ctx context.Context, opts ...AttemptOption) (Result, error) {
	var a attempt
	for _, opt := range opts {
		opt(&a)
	}

	attemptID, catalog, input, err := c.begin(a)
	if err != nil {
		return Result{}, err
	}

	result := Result{AttemptID: attemptID}
	logger := c.logger.With("attempt_id", attemptID)
	perf := logging.StartOperation(logger, "submit")

	defer func() {
		c.finish(result, catalog)
		if c.recorder != nil {
			c.recorder.ObserveSubmission(string(result.Outcome), perf.Elapsed())
		}
		if result.Err != nil {
			perf.EndWithError(ctx, result.Err, "outcome", result.Outcome, "http_status", result.HTTPStatus)
		} else {
			perf.End(ctx, "outcome", result.Outcome, "http_status", result.HTTPStatus)
		}
	}()

	payload := BuildPayload(input)
	logger.Info(ctx, "Submitting contact form",
		"endpoint", c.endpoint,
		"subject", logging.SanitizeForLog(payload.Subject()))

	resp, err := c.send(ctx, payload)
	if err != nil {
		result.Outcome = OutcomeNetworkError
		result.Status = catalog.NetworkErrorStatus()
		result.Err = contacterrors.NewNetworkError(contacterrors.ErrCodeTransport, "request did not complete", err).
			WithComponent("submission")
		return result, nil
	}
	defer resp.Body.Close()

	result.HTTPStatus = resp.StatusCode
	body := parseResponseBody(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Outcome = OutcomeSuccess
		result.Status = catalog.SuccessStatus()
		c.surface.Reset()
		return result, nil
	}

	reason := body.ErrorText()
	result.Outcome = OutcomeServerError
	result.Status = catalog.ServerErrorStatus(reason)
	msg := reason
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	result.Err = contacterrors.NewServerError(contacterrors.ErrCodeRejected, msg, resp.StatusCode).
		WithComponent("submission")

	return result, nil
}

// begin flips Idle to Submitting, clears the status and captures the input
// the attempt sends. Staged input is written to the surface before the lock is
// released, so no other request can change it in between.
func (c *Controller) begin(a attempt) (attemptID string, catalog Catalog, input FormInput, err error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return "", Catalog{}, FormInput{}, ErrSubmissionInProgress
	}
	if a.input != nil {
		if err := c.stageLocked(*a.input); err != nil {
			c.mu.Unlock()
			return "", Catalog{}, FormInput{}, err
		}
		input = *a.input
	} else {
		input = c.surface.Values()
	}
	catalog = c.catalog
	if a.catalog != nil {
		catalog = *a.catalog
	}
	c.state = StateSubmitting
	c.status = Status{}
	attemptID = c.newID()
	observers := c.observers
	c.mu.Unlock()

	notify(observers, Event{
		Kind:      EventStarted,
		AttemptID: attemptID,
		State:     StateSubmitting,
		StateName: StateSubmitting.String(),
		At:        time.Now(),
	})

	return attemptID, catalog, input, nil
}

// finish publishes the terminal status and returns to Idle. A result without
// an outcome means the cycle was interrupted, which is shown as a network
// failure so a status is always visible.
func (c *Controller) finish(result Result, catalog Catalog) {
	c.mu.Lock()
	if result.Outcome == "" {
		result.Outcome = OutcomeNetworkError
		result.Status = catalog.NetworkErrorStatus()
	}
	c.status = result.Status
	c.state = StateIdle
	observers := c.observers
	c.mu.Unlock()

	notify(observers, Event{
		Kind:      EventFinished,
		AttemptID: result.AttemptID,
		State:     StateIdle,
		StateName: StateIdle.String(),
		Status:    result.Status,
		Outcome:   result.Outcome,
		At:        time.Now(),
	})
}

// send posts the payload. A panic inside the transport is reported as a
// transport error.
func (c *Controller) send(ctx context.Context, payload SubmissionPayload) (resp *http.Response, err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Marshaler output is re-escaped unless the outer encoder allows HTML.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("Accept", "application/json")

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()

	return c.client.Do(req)
}

func notify(observers []Observer, e Event) {
	for _, o := range observers {
		o.OnSubmissionEvent(e)
	}
}
