package render

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// HTMXRequestHeader is set by htmx on requests it issues.
const HTMXRequestHeader = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(HTMXRequestHeader), "true")
}

// Page serves fragment to htmx requests and full otherwise. A nil full
// falls back to fragment.
func Page(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component) error {
	target := full
	if IsHTMXRequest(r) || target == nil {
		target = fragment
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", HTMXRequestHeader)
	w.WriteHeader(status)
	if target == nil {
		return nil
	}
	return target.Render(r.Context(), w)
}
