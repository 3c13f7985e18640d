package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"aqicast/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// inputError reports a malformed request field.
type inputError struct{ msg string }

func (e inputError) Error() string   { return e.msg }
func (e inputError) StatusCode() int { return http.StatusBadRequest }

// statusFor maps err to an HTTP status; anything without a StatusCode is a 500.
func statusFor(err error) int {
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
