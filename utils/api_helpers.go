package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already sent, nothing left but logging
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// RespondError sends a JSON error response and logs the message on the request logger from ctx.
func RespondError(ctx context.Context, w http.ResponseWriter, message string, status int) {
	event := log.Ctx(ctx).Warn()
	if status >= http.StatusInternalServerError {
		event = log.Ctx(ctx).Error()
	}
	event.Int("status", status).Msg(message)
	RespondJSON(w, status, map[string]string{"error": message})
}

// DecodeJSON decodes a request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
