package httpapi

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var (
	limiterMu sync.RWMutex
	limiter   *rate.Limiter
)

// SetRateLimit installs a process-wide token bucket for forecast routes.
// rps <= 0 disables limiting.
func SetRateLimit(rps float64, burst int) {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	if rps <= 0 {
		limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// RateLimitMessage is shown to clients turned away by the limiter.
const RateLimitMessage = "too many forecast requests, retry shortly"

// RateLimit rejects requests with a JSON 429 once the bucket is empty.
func RateLimit(next http.Handler) http.Handler {
	return RateLimitWith(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusTooManyRequests, RateLimitMessage)
	})(next)
}

// RateLimitWith is RateLimit with a custom rejection. reject must write the
// 429 status itself; Retry-After is already set.
func RateLimitWith(reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiterMu.RLock()
			l := limiter
			limiterMu.RUnlock()
			if l != nil && !l.Allow() {
				IncrementBackpressure("rate_limit")
				w.Header().Set("Retry-After", "1")
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
