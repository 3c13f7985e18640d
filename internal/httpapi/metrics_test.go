package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"aqicast/internal/registry"
)

func scrape(t *testing.T) []byte {
	t.Helper()
	mrr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if mrr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", mrr.Code)
	}
	return mrr.Body.Bytes()
}

// TestMetricsMiddleware_UsesRoutePattern ensures requests are labeled by the
// chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/plots/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/plots/delhi", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/plots/{name}", "GET", "200")); got < 1 {
		t.Fatalf("expected counter for route pattern, got %v", got)
	}
	body := scrape(t)
	if !bytes.Contains(body, []byte("aqicast_http_requests_total")) || bytes.Contains(body, []byte("/plots/delhi")) {
		t.Fatalf("unexpected metrics labels")
	}
}

func TestMetricsMiddleware_RecordsStatus(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/nowhere", "GET", "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("/nowhere", "GET", "404"))
	if after-before != 1 {
		t.Fatalf("expected one 404 sample, got %v", after-before)
	}
	if got := testutil.ToFloat64(httpInflight); got != 0 {
		t.Fatalf("inflight should return to 0, got %v", got)
	}
}

func TestIncrementBackpressure_DefaultsReason(t *testing.T) {
	before := testutil.ToFloat64(backpressureTotal.WithLabelValues("unspecified"))
	IncrementBackpressure("")
	if got := testutil.ToFloat64(backpressureTotal.WithLabelValues("unspecified")) - before; got != 1 {
		t.Fatalf("expected +1, got %v", got)
	}
}

func TestObserveForecast_LabelsFrontEndAndOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{inputError{msg: "bad"}, "invalid"},
		{&registry.NotFoundError{City: "Atlantis"}, "not_found"},
		{fmt.Errorf("forecast: %w", context.DeadlineExceeded), "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}
	for _, c := range cases {
		before := testutil.ToFloat64(httpForecastsTotal.WithLabelValues(FrontEndAPI, c.want))
		ObserveForecast(FrontEndAPI, time.Now(), c.err)
		if got := testutil.ToFloat64(httpForecastsTotal.WithLabelValues(FrontEndAPI, c.want)) - before; got != 1 {
			t.Fatalf("err %v: expected +1 for outcome %q, got %v", c.err, c.want, got)
		}
	}
	if !bytes.Contains(scrape(t), []byte(`aqicast_http_forecast_duration_seconds_count{front_end="api"}`)) {
		t.Fatalf("expected forecast duration series for the api front-end")
	}
}

func TestPredictRecordsWebForecast(t *testing.T) {
	before := testutil.ToFloat64(httpForecastsTotal.WithLabelValues(FrontEndWeb, "ok"))
	h, _ := newTestMux(t, &mockService{value: 1})
	rr := postForm(h, url.Values{"city": {"Delhi"}, "days": {"2"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("predict status=%d", rr.Code)
	}
	if got := testutil.ToFloat64(httpForecastsTotal.WithLabelValues(FrontEndWeb, "ok")) - before; got != 1 {
		t.Fatalf("expected one web forecast, got %v", got)
	}
}
