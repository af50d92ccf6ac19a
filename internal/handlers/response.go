package handlers

import (
	"encoding/json"
	"net/http"

	"rechner-api/internal/observability"

	"go.uber.org/zap"
)

const msgEncodeFailed = "internal server error"

// WriteJSON writes v as a JSON response with the given status. v is encoded
// before the header goes out, so a value that cannot be encoded turns into a
// 500 error response instead of an empty body.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		observability.Logger.Error("encoding response body",
			zap.Error(err),
			zap.Int("status", status),
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": msgEncodeFailed})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		observability.Logger.Warn("writing response body", zap.Error(err))
	}
}

// WriteError writes a standardised JSON error response.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{
		"error": msg,
	})
}
