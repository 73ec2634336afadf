// Package server runs the contact widget preview: it renders the contact
// section, accepts form posts through a SubmissionController, redirects the
// quick-contact links and streams controller events.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prestigia-agency/contact/internal/config"
	"github.com/prestigia-agency/contact/internal/contact"
	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/events"
	"github.com/prestigia-agency/contact/internal/logging"
	"github.com/prestigia-agency/contact/internal/metrics"
)

// Routes.
const (
	PathIndex   = "/"
	PathSubmit  = "/contact"
	PathQuick   = "/quick"
	PathEvents  = "/ws"
	PathMetrics = "/metrics"
	PathHealth  = "/healthz"
)

// LocaleAuto makes the server pick status texts from each request's
// Accept-Language header.
const LocaleAuto = "auto"

// Server serves one contact widget. It owns a single controller and input
// surface, so it previews the widget for one visitor at a time.
type Server struct {
	config     *config.Config
	logger     logging.Logger
	surface    *contact.MemorySurface
	controller *contact.Controller
	hub        *events.Hub
	metrics    *metrics.Metrics
	errHandler *contacterrors.ErrorHandler

	mu        sync.Mutex
	missing   []string
	locale    string
	listening net.Addr

	serverMutex sync.Mutex
	httpServer  *http.Server
}

// Option configures a Server.
type Option func(*options)

type options struct {
	httpClient contact.Doer
	baseURL    string
}

// WithBackendClient replaces the client used to reach the backend.
func WithBackendClient(client contact.Doer) Option {
	return func(o *options) { o.httpClient = client }
}

// WithBackendURL overrides the configured backend base url.
func WithBackendURL(base string) Option {
	return func(o *options) { o.baseURL = base }
}

// New wires the controller, the events hub and the metrics for cfg.
func New(cfg *config.Config, logger logging.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	o := options{baseURL: cfg.Backend.BaseURL}
	if cfg.Server.StubBackend {
		o.baseURL = "http://" + cfg.Address()
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		config:  cfg,
		logger:  logger.WithComponent("server"),
		surface: contact.NewMemorySurface(contact.FormInput{}),
		metrics: metrics.New(),
		locale:  cfg.Locale,
	}
	s.errHandler = contacterrors.NewErrorHandler(s.logger)

	controllerOpts := []contact.Option{
		contact.WithBaseURL(o.baseURL),
		contact.WithCatalog(contact.CatalogForLocale(cfg.Locale)),
		contact.WithLogger(logger),
		contact.WithRecorder(s.metrics),
	}
	if o.httpClient != nil {
		controllerOpts = append(controllerOpts, contact.WithHTTPClient(o.httpClient))
	}

	controller, err := contact.NewController(s.surface, controllerOpts...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.controller = controller

	s.hub = events.NewHub(logger, s.snapshot, cfg.Server.Host)
	controller.Subscribe(s.hub)

	return s, nil
}

// Controller returns the submission controller.
func (s *Server) Controller() *contact.Controller {
	return s.controller
}

// Metrics returns the server's instruments.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Apply takes a reloaded configuration. Only the locale can change without
// restarting the listener.
func (s *Server) Apply(cfg *config.Config) {
	s.mu.Lock()
	s.locale = cfg.Locale
	s.mu.Unlock()
	if cfg.Locale != LocaleAuto {
		s.controller.SetCatalog(contact.CatalogForLocale(cfg.Locale))
	}
	s.logger.Info(context.Background(), "Configuration reloaded", "locale", cfg.Locale)
}

// Handler returns the routed and wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+PathIndex+"{$}", s.handleIndex)
	mux.HandleFunc("POST "+PathSubmit, s.handleSubmit)
	mux.HandleFunc("GET "+PathQuick+"/{channel}", s.handleQuick)
	mux.Handle("GET "+PathEvents, s.hub)
	mux.Handle("GET "+PathMetrics, s.metrics.Handler())
	mux.HandleFunc("GET "+PathHealth, s.handleHealth)
	if s.config.Server.StubBackend {
		mux.Handle("POST "+contact.EndpointPath, NewStubBackend(s.logger))
	}

	return chain(mux, recoverMiddleware(s.logger), loggingMiddleware(s.logger), securityHeaders)
}

// Start listens on the configured address and serves until ctx is done or
// Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address(), err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done or Shutdown is called.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.serverMutex.Lock()
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer := s.httpServer
	s.serverMutex.Unlock()

	s.mu.Lock()
	s.listening = listener.Addr()
	s.mu.Unlock()

	s.logger.Info(ctx, "Contact preview server listening",
		"address", listener.Addr().String(),
		"backend", s.controller.Endpoint())

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown stops the events hub and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Shutdown()

	s.serverMutex.Lock()
	httpServer := s.httpServer
	s.serverMutex.Unlock()
	if httpServer == nil {
		return nil
	}

	return httpServer.Shutdown(ctx)
}

// Addr returns the address Serve is listening on, or nil before it starts.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listening
}

func (s *Server) snapshot() contact.Event {
	state := s.controller.State()
	return contact.Event{
		Kind:      "snapshot",
		State:     state,
		StateName: state.String(),
		Status:    s.controller.Status(),
		At:        time.Now(),
	}
}
