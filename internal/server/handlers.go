package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prestigia-agency/contact/internal/contact"
	contacterrors "github.com/prestigia-agency/contact/internal/errors"
	"github.com/prestigia-agency/contact/internal/quickcontact"
	"github.com/prestigia-agency/contact/internal/version"
	"github.com/prestigia-agency/contact/internal/view"
)

// OutcomeHeader carries the submission outcome on POST /contact responses.
const OutcomeHeader = "X-Contact-Outcome"

// maxFormBytes bounds a posted form.
const maxFormBytes = 64 << 10

// model shows the shared surface. Responses to a POST use formModel with the
// request's own input instead.
func (s *Server) model() view.Model {
	s.mu.Lock()
	missing := s.missing
	s.mu.Unlock()

	return s.formModel(s.surface.Values(), s.controller.Status(), missing)
}

func (s *Server) formModel(in contact.FormInput, status contact.Status, missing []string) view.Model {
	return view.Model{
		Input:      in,
		Submitting: s.controller.Busy(),
		Status:     status,
		Missing:    missing,
		Action:     PathSubmit,
		QuickPath:  PathQuick,
	}
}

func (s *Server) pageOptions(r *http.Request) view.PageOptions {
	return view.PageOptions{
		Title:      "Contact | Prestigia Agency",
		Lang:       s.catalogFor(r).Tag.String(),
		EventsPath: PathEvents,
	}
}

func (s *Server) catalogFor(r *http.Request) contact.Catalog {
	s.mu.Lock()
	locale := s.locale
	s.mu.Unlock()

	if locale == LocaleAuto {
		return contact.CatalogForLocale(r.Header.Get("Accept-Language"))
	}
	return contact.CatalogForLocale(locale)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, m view.Model) {
	section := view.ContactSection(m)
	RenderPage(w, r, status, section, view.Page(s.pageOptions(r), section))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.model())
}

// handleSubmit never writes the shared surface outside the controller's
// guard, and every response shows the input of the request it answers.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.Warn(ctx, err, "Failed to parse contact form")
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input, err := contact.FromValues(r.PostForm)
	if err != nil {
		if !contacterrors.IsType(err, contacterrors.ErrorTypeValidation) {
			s.logger.Error(ctx, err, "Unexpected form decoding failure")
		}
		missing := input.Missing()
		if err := s.controller.Stage(input); err != nil {
			if contacterrors.IsBusy(err) {
				s.renderBusy(w, r, input)
				return
			}
			s.logger.Error(ctx, err, "Failed to stage contact form")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.logger.Info(ctx, "Contact form missing required fields", "fields", missing)
		s.setMissing(missing)
		s.render(w, r, http.StatusUnprocessableEntity, s.formModel(input, s.controller.Status(), missing))
		return
	}

	// The cycle runs to completion even if the visitor goes away.
	result, err := s.controller.Submit(context.WithoutCancel(ctx),
		contact.WithInput(input),
		contact.WithAttemptCatalog(s.catalogFor(r)))
	if err != nil {
		if contacterrors.IsBusy(err) {
			s.renderBusy(w, r, input)
			return
		}
		s.logger.Error(ctx, err, "Submission could not start")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.setMissing(nil)
	s.errHandler.Handle(ctx, result.Err)

	shown := input
	if result.Outcome == contact.OutcomeSuccess {
		shown = contact.FormInput{}
	}
	w.Header().Set(OutcomeHeader, string(result.Outcome))
	s.render(w, r, http.StatusOK, s.formModel(shown, result.Status, nil))
}

// renderBusy answers a refused POST with the visitor's own input and the
// submit button disabled.
func (s *Server) renderBusy(w http.ResponseWriter, r *http.Request, in contact.FormInput) {
	s.logger.Info(r.Context(), "Submission refused while another is in progress")
	w.Header().Set(OutcomeHeader, "busy")
	m := s.formModel(in, contact.Status{}, nil)
	m.Submitting = true
	s.render(w, r, http.StatusConflict, m)
}

func (s *Server) handleQuick(w http.ResponseWriter, r *http.Request) {
	channel, err := quickcontact.ParseChannel(r.PathValue("channel"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	dispatcher := quickcontact.NewDispatcher(quickcontact.Redirect{W: w, R: r}, s.logger, s.metrics)
	if err := dispatcher.Dispatch(r.Context(), channel); err != nil {
		http.Error(w, "quick contact unavailable", http.StatusInternalServerError)
	}
}

// handleHealth reports liveness and the controller state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.Get().Short(),
		"submission": map[string]interface{}{
			"state":    s.controller.State().String(),
			"endpoint": s.controller.Endpoint(),
		},
		"events": map[string]interface{}{
			"clients": s.hub.ClientCount(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode health response")
	}
}

func (s *Server) setMissing(missing []string) {
	s.mu.Lock()
	s.missing = missing
	s.mu.Unlock()
}
