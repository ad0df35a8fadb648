// Package healthz serves liveness and readiness endpoints.
package healthz

import (
	"fmt"
	"net/http"
)

// Check returns an error when the process is not healthy.
type Check func() error

type Handler struct {
	checks []Check
}

func New(checks ...Check) *Handler {
	return &Handler{
		checks: checks,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, c := range h.checks {
		if err := c(); err != nil {
			http.Error(w, fmt.Sprintf("503 Service Unavailable: %v", err), http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("200 OK"))
}
