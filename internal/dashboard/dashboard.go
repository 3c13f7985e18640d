// Package dashboard serves the interactive forecast dashboard: a city picker,
// a horizon input and an inline chart rendered on every generate.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonum.org/v1/plot/vg"

	"aqicast/internal/chart"
	"aqicast/internal/forecast"
	"aqicast/internal/httpapi"
)

//go:embed templates/*.html
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Service is the subset of forecast.Service the dashboard needs.
type Service interface {
	Cities() ([]string, error)
	Forecast(ctx context.Context, city string, days int) (forecast.Result, error)
	MaxHorizon() int
	Ready() bool
}

type row struct {
	Date         string
	PredictedAQI float64
}

type view struct {
	Cities     []string
	City       string
	Days       string
	MaxHorizon int
	Error      string
	Heading    string
	Rows       []row
	ChartURI   template.URL
	ChartLink  string
}

type dashboard struct {
	svc         Service
	defaultDays int
}

// NewMux builds the dashboard router. defaultDays pre-fills the horizon input.
func NewMux(svc Service, defaultDays int) http.Handler {
	if defaultDays < 1 || defaultDays > svc.MaxHorizon() {
		defaultDays = min(7, svc.MaxHorizon())
	}
	d := &dashboard{svc: svc, defaultDays: defaultDays}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpapi.MetricsMiddleware)
	r.Use(httpapi.RequestLogger)

	r.Get("/", d.handlePage)
	r.With(httpapi.RateLimitWith(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Error: "+httpapi.RateLimitMessage, http.StatusTooManyRequests)
	})).Get("/chart.png", d.handleChart)
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
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	return r
}

// Heading is the title shown above a generated forecast.
func Heading(city string, days int) string {
	return fmt.Sprintf("Predicted AQI for %s (Next %d Days)", city, days)
}

func chartOptions(city string, days int) chart.Options {
	return chart.Options{Title: Heading(city, days), Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

func (d *dashboard) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := view{City: strings.TrimSpace(q.Get("city")), Days: q.Get("days"), MaxHorizon: d.svc.MaxHorizon()}
	if v.Days == "" {
		v.Days = strconv.Itoa(d.defaultDays)
	}
	cities, err := d.svc.Cities()
	if err != nil {
		lg := httpapi.Logger()
		lg.Warn().Err(err).Msg("list cities")
	}
	v.Cities = cities
	if len(cities) > 0 && v.City == "" {
		v.City = cities[0]
	}

	status := http.StatusOK
	if q.Get("generate") != "" && len(cities) > 0 {
		if err := d.generate(r.Context(), &v); err != nil {
			status = statusFor(err)
			v.Error = err.Error()
			lg := httpapi.Logger()
			lg.Info().Err(err).Str("city", v.City).Int("status", status).Msg("dashboard forecast failed")
		}
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "dashboard.html", v); err != nil {
		lg := httpapi.Logger()
		lg.Error().Err(err).Msg("render dashboard")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// generate runs the forecast for v.City/v.Days and fills the result fields.
func (d *dashboard) generate(ctx context.Context, v *view) error {
	res, days, err := d.forecast(ctx, v.City, v.Days)
	if err != nil {
		return err
	}
	var png bytes.Buffer
	if err := chart.WritePNG(&png, res, chartOptions(res.City, days)); err != nil {
		return err
	}
	v.City = res.City
	v.Heading = Heading(res.City, days)
	v.Rows = make([]row, len(res.Points))
	for i, p := range res.Points {
		v.Rows[i] = row{Date: p.Date.Format("2006-01-02"), PredictedAQI: p.Value}
	}
	v.ChartURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png.Bytes()))
	v.ChartLink = "/chart.png?" + url.Values{"city": {res.City}, "days": {strconv.Itoa(days)}}.Encode()
	return nil
}

// forecast validates the inputs and runs the service under the shared
// shutdown/timeout context.
func (d *dashboard) forecast(reqCtx context.Context, city, rawDays string) (forecast.Result, int, error) {
	days, err := httpapi.ParseDays(rawDays)
	if err != nil {
		return forecast.Result{}, 0, err
	}
	if err := httpapi.CheckRequest(city, days, d.svc.MaxHorizon()); err != nil {
		return forecast.Result{}, 0, err
	}
	ctx, cancel := httpapi.ForecastContext(reqCtx)
	defer cancel()
	start := time.Now()
	res, err := d.svc.Forecast(ctx, city, days)
	httpapi.ObserveForecast(httpapi.FrontEndDashboard, start, err)
	return res, days, err
}

func (d *dashboard) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, days, err := d.forecast(r.Context(), strings.TrimSpace(q.Get("city")), q.Get("days"))
	if err != nil {
		http.Error(w, "Error: "+err.Error(), statusFor(err))
		return
	}
	var png bytes.Buffer
	if err := chart.WritePNG(&png, res, chartOptions(res.City, days)); err != nil {
		http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png.Bytes())
}

func statusFor(err error) int {
	var he httpapi.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
