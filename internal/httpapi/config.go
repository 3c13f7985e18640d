package httpapi

// maxBodyBytes controls the maximum allowed request body size for form and JSON endpoints.
// Default 1 MiB.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// forecastTimeout bounds a single forecast request.
// Zero means no additional timeout beyond server/connection timeouts.
var forecastTimeout = int64(0) // seconds

// SetForecastTimeoutSeconds sets the forecast timeout in seconds (0 disables).
func SetForecastTimeoutSeconds(sec int64) {
	if sec < 0 {
		sec = 0
	}
	forecastTimeout = sec
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the JSON API routes.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
