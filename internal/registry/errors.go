package registry

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NotFoundError is returned when no artifact exists for a city. It carries
// the attempted path and the directory listing so callers can show which
// names would have worked.
type NotFoundError struct {
	City      string
	Path      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model file not found: %s\navailable models: [%s]", e.Path, strings.Join(e.Available, ", "))
}

// StatusCode maps the error to 404 for HTTP front-ends.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
