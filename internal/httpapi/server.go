package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aqicast/internal/forecast"
	"aqicast/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Cities() ([]string, error)
	Models() ([]types.Model, error)
	Forecast(ctx context.Context, city string, days int) (forecast.Result, error)
	MaxHorizon() int
	Ready() bool
	Status() forecast.Status
}

// ChartSaver persists a forecast chart and returns its path relative to
// StaticDir.
type ChartSaver interface {
	Save(res forecast.Result) (string, error)
	StaticDir() string
}

type server struct {
	svc         Service
	charts      ChartSaver
	defaultDays int
}

// NewMux builds the web form front-end and the JSON API.
// defaultDays pre-fills the form; values outside the horizon fall back to 7.
func NewMux(svc Service, charts ChartSaver, defaultDays int) http.Handler {
	if defaultDays < 1 || defaultDays > svc.MaxHorizon() {
		defaultDays = min(7, svc.MaxHorizon())
	}
	s := &server{svc: svc, charts: charts, defaultDays: defaultDays}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", s.handleIndex)
	r.With(RateLimitWith(s.rejectPredict)).Post("/predict", s.handlePredict)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(charts.StaticDir()))))

	r.Group(func(api chi.Router) {
		if corsEnabled {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins: corsAllowedOrigins,
				AllowedMethods: corsAllowedMethods,
				AllowedHeaders: corsAllowedHeaders,
				MaxAge:         300,
			}))
		}
		api.Get("/cities", s.handleCities)
		api.Get("/models", s.handleModels)
		api.With(RateLimit).Post("/forecast", s.handleForecast)
		api.Get("/status", s.handleStatus)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no models"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func (s *server) indexPage(city, days, errMsg string) indexPage {
	cities, err := s.svc.Cities()
	if err != nil {
		zlog.Warn().Err(err).Msg("list cities")
	}
	return indexPage{Error: errMsg, City: city, Days: days, Cities: cities, MaxHorizon: s.svc.MaxHorizon()}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "index.html", s.indexPage("", strconv.Itoa(s.defaultDays), ""))
}

// rejectPredict re-renders the form with the submitted values when the
// limiter turns a submission away.
func (s *server) rejectPredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	_ = r.ParseForm()
	city := strings.TrimSpace(r.PostFormValue("city"))
	renderPage(w, http.StatusTooManyRequests, "index.html", s.indexPage(city, r.PostFormValue("days"), RateLimitMessage))
}

// handlePredict runs load -> forecast -> chart for the submitted form. Any
// failure re-renders the input page with the error text.
func (s *server) handlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "index.html", s.indexPage("", "", "invalid form submission"))
		return
	}
	city := strings.TrimSpace(r.PostFormValue("city"))
	rawDays := r.PostFormValue("days")

	fail := func(err error) {
		status := statusFor(err)
		ev := zlog.Info()
		if status >= http.StatusInternalServerError {
			ev = zlog.Error()
		}
		ev.Err(err).Str("city", city).Int("status", status).Msg("predict failed")
		renderPage(w, status, "index.html", s.indexPage(city, rawDays, err.Error()))
	}

	days, err := ParseDays(rawDays)
	if err != nil {
		fail(err)
		return
	}
	if err := CheckRequest(city, days, s.svc.MaxHorizon()); err != nil {
		fail(err)
		return
	}
	ctx, cancel := ForecastContext(r.Context())
	defer cancel()
	start := time.Now()
	res, err := s.svc.Forecast(ctx, city, days)
	ObserveForecast(FrontEndWeb, start, err)
	if err != nil {
		fail(err)
		return
	}
	plotPath, err := s.charts.Save(res)
	if err != nil {
		fail(err)
		return
	}
	renderPage(w, http.StatusOK, "result.html", newResultPage(res, plotPath))
}

// handleCities godoc
// @Summary      List cities
// @Description  Cities with a model artifact, sorted ascending.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  types.CitiesResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /cities [get]
func (s *server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.svc.Cities()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.CitiesResponse{Cities: cities})
}

// handleModels godoc
// @Summary      List model artifacts
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /models [get]
func (s *server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.svc.Models()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, types.ModelsResponse{Models: models})
}

// handleStatus godoc
// @Summary      Service status
// @Tags         status
// @Produce      json
// @Success      200  {object}  forecast.Status
// @Router       /status [get]
func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status())
}

// handleForecast godoc
// @Summary      Forecast AQI
// @Description  Forecast a city's AQI for the requested number of days starting today.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        request  body      types.ForecastRequest  true  "City and horizon"
// @Success      200      {object}  types.ForecastResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /forecast [post]
func (s *server) handleForecast(w http.ResponseWriter, r *http.Request) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.City = strings.TrimSpace(req.City)
	if err := s.checkForecastRequest(req); err != nil {
		writeJSONError(w, statusFor(err), err.Error())
		return
	}

	ctx, cancel := ForecastContext(r.Context())
	defer cancel()
	start := time.Now()
	res, err := s.svc.Forecast(ctx, req.City, req.Days)
	ObserveForecast(FrontEndAPI, start, err)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		writeJSONError(w, statusFor(err), err.Error())
		return
	}
	resp := types.ForecastResponse{City: res.City, Days: res.Days(), Points: make([]types.ForecastPoint, len(res.Points))}
	for i, p := range res.Points {
		resp.Points[i] = types.ForecastPoint{Date: p.Date, PredictedAQI: p.Value}
	}
	if req.Chart {
		if resp.PlotPath, err = s.charts.Save(res); err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) checkForecastRequest(req types.ForecastRequest) error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 && verrs[0].Field() == "Days" {
			return &forecast.HorizonError{Days: req.Days, Max: s.svc.MaxHorizon()}
		}
		return cityError(err)
	}
	return CheckRequest(req.City, req.Days, s.svc.MaxHorizon())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
