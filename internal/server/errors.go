package server

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// Error codes returned in error bodies. Nothing else about a failure reaches the client.
const (
	errCodeInternal         = "internal_error"
	errCodeNotFound         = "not_found"
	errCodeMethodNotAllowed = "method_not_allowed"
	errCodeRateLimited      = "rate_limited"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	writeJSON(w, status, errorResponse{
		Error:     code,
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"` + errCodeInternal + `"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
