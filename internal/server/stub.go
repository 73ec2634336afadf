package server

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/prestigia-agency/contact/internal/logging"
)

type stubRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// NewStubBackend returns a stand-in for the site's /api/contact endpoint. It
// accepts any well-formed request and answers the same error bodies the real
// endpoint does, so the preview can exercise both status paths.
func NewStubBackend(logger logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithComponent("stub_backend")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req stubRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&req); err != nil {
			writeStubError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
			writeStubError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		if _, err := mail.ParseAddress(req.Email); err != nil {
			writeStubError(w, http.StatusBadRequest, "Invalid email")
			return
		}

		logger.Info(r.Context(), "Stub backend accepted contact message",
			"subject", logging.SanitizeForLog(req.Subject),
			"bytes", len(req.Message))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
}

func writeStubError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
