package scoringapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// serviceError is a non-2xx reply from the scoring service, reduced to the
// one human-readable message shown to the user.
type serviceError struct {
	Status  int
	Message string
}

func (e *serviceError) Error() string { return e.Message }

// extractErrorMessage pulls the service's own wording out of a structured
// error body. FastAPI-style services put it under "detail"; others use
// "error" or "message". Anything else collapses to a generic status line.
func extractErrorMessage(body []byte, status int) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return fmt.Sprintf("scoring service returned status %d", status)
}

// endpointMissing reports whether err says the route itself is absent, which
// is how older single-predict-only deployments answer batch calls.
func endpointMissing(err error) (*serviceError, bool) {
	var se *serviceError
	if errors.As(err, &se) && (se.Status == http.StatusNotFound || se.Status == http.StatusMethodNotAllowed) {
		return se, true
	}
	return nil, false
}
