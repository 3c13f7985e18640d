package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"aqicast/internal/chart"
	"aqicast/internal/dashboard"
	"aqicast/internal/forecast"
	"aqicast/internal/httpapi"
	"aqicast/internal/model"
	"aqicast/internal/registry"
)

// fixedNow pins "today" so dated rows are deterministic.
var fixedNow = time.Date(2024, 2, 27, 15, 4, 5, 0, time.UTC)

// createTempModelsDir writes one artifact per entry and returns the directory.
func createTempModelsDir(t *testing.T, artifacts map[string]model.Artifact) string {
	t.Helper()
	dir := t.TempDir()
	for city, a := range artifacts {
		if err := model.WriteFile(filepath.Join(dir, registry.FileName(city)), a); err != nil {
			t.Fatalf("write artifact %s: %v", city, err)
		}
	}
	return dir
}

func newService(t *testing.T, modelsDir string, events forecast.EventPublisher) *forecast.Service {
	t.Helper()
	store, err := registry.Open(modelsDir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return forecast.New(forecast.Config{
		Loader:   store,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
		Events:   events,
	})
}

// newWebServer wires the web form front-end against real artifacts on disk.
func newWebServer(t *testing.T, modelsDir string, events forecast.EventPublisher) (*httptest.Server, string) {
	t.Helper()
	staticDir := t.TempDir()
	saver, err := chart.NewSaver(staticDir, chart.Options{})
	if err != nil {
		t.Fatalf("new saver: %v", err)
	}
	srv := httptest.NewServer(httpapi.NewMux(newService(t, modelsDir, events), saver, 7))
	t.Cleanup(srv.Close)
	return srv, staticDir
}

func newDashboardServer(t *testing.T, modelsDir string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(dashboard.NewMux(newService(t, modelsDir, nil), 7))
	t.Cleanup(srv.Close)
	return srv
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostForm(t *testing.T, target string, vals url.Values) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.PostForm(target, vals)
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

func httpPostJSON(t *testing.T, target, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(target, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("post json: %v", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}
