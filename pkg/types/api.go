package types

import "time"

// ModelsResponse wraps the list of artifacts returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// CitiesResponse is returned by GET /cities.
type CitiesResponse struct {
	// Sorted city names with an available artifact.
	// example: ["Delhi","Mumbai"]
	Cities []string `json:"cities" example:"Delhi,Mumbai"`
}

// ForecastRequest is the POST /forecast payload.
type ForecastRequest struct {
	// City to forecast; matched case-insensitively against artifact names.
	// example: Delhi
	City string `json:"city" validate:"required,max=128" example:"Delhi"`
	// Number of days to forecast, starting today.
	// example: 7
	Days int `json:"days" validate:"gte=1" example:"7"`
	// Also render and save the chart; its path is returned as plot_path.
	// example: false
	Chart bool `json:"chart,omitempty" example:"false"`
}

// ForecastPoint is one row of a forecast table.
type ForecastPoint struct {
	// Calendar day (midnight, server time zone).
	Date time.Time `json:"date"`
	// Predicted AQI value.
	// example: 142.37
	PredictedAQI float64 `json:"predicted_aqi" example:"142.37"`
}

// ForecastResponse is returned by POST /forecast.
type ForecastResponse struct {
	// example: Delhi
	City string `json:"city" example:"Delhi"`
	// example: 7
	Days   int             `json:"days" example:"7"`
	Points []ForecastPoint `json:"points"`
	// Relative path of the saved chart, when one was rendered.
	// example: plots/delhi_forecast.png
	PlotPath string `json:"plot_path,omitempty" example:"plots/delhi_forecast.png"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
