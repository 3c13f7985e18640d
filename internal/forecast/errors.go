package forecast

import (
	"errors"
	"fmt"
	"net/http"
)

// HorizonError reports a requested horizon outside [1, Max].
type HorizonError struct {
	Days int
	Max  int
}

func (e *HorizonError) Error() string {
	return fmt.Sprintf("days must be between 1 and %d, got %d", e.Max, e.Days)
}

func (e *HorizonError) StatusCode() int { return http.StatusBadRequest }

// IsInvalidHorizon reports whether err is a HorizonError.
func IsInvalidHorizon(err error) bool {
	var he *HorizonError
	return errors.As(err, &he)
}

// badOutputError signals that a model returned something other than the
// requested number of finite values.
type badOutputError struct {
	city string
	msg  string
}

func (e badOutputError) Error() string { return "model for " + e.city + " " + e.msg }

// IsBadModelOutput reports whether err came from validating model output.
func IsBadModelOutput(err error) bool {
	var be badOutputError
	return errors.As(err, &be)
}
