package server

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// HTMXRequestHeader marks requests issued by htmx. Those get the contact
// section alone, which htmx swaps in place of the current one.
const HTMXRequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HTMXRequestHeader), "true")
}

// RenderPage writes fragment to htmx requests and full to everything else.
// A nil full falls back to fragment.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component) {
	target := full
	if IsHTMXRequest(r) || target == nil {
		target = fragment
	}
	if target == nil {
		w.WriteHeader(status)
		return
	}

	var opts []func(*templ.ComponentHandler)
	if status != http.StatusOK {
		opts = append(opts, templ.WithStatus(status))
	}
	templ.Handler(target, opts...).ServeHTTP(w, r)
}
