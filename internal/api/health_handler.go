package api

import "net/http"

// Health handles GET /health. It does not touch the language model; use the
// ping endpoint for that.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
