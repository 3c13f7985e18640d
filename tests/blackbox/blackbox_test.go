package blackbox

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	return filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("blackbox tests build the binary; skipped in -short mode")
	}
	binPath := filepath.Join(t.TempDir(), "aqicast")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/aqicast")
	cmd.Dir = projectRootFromThisFile(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// artifacts are written as raw JSON so the test depends only on the file format.
var artifacts = map[string]string{
	"Delhi_AutoARIMA.pkl":  `{"kind":"constant","value":42}`,
	"Mumbai_AutoARIMA.pkl": `{"kind":"arima","order":{"p":1,"d":1,"q":0},"intercept":0.5,"ar":[0.4],"history":[150,152,149,155,158]}`,
}

func createTempModelsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range artifacts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", name, err)
		}
	}
	return dir
}

func createModelsArchive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range artifacts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip entry: %v", err)
		}
		_, _ = w.Write([]byte(body))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	_ = f.Close()
	return path
}

// start launches the binary and waits for /healthz.
func start(t *testing.T, bin string, args ...string) string {
	t.Helper()
	port := findFreePort(t)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	args = append(args, "--addr", fmt.Sprintf("127.0.0.1:%d", port), "--env-file", filepath.Join(t.TempDir(), "none.env"))
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() { _ = cmd.Process.Kill(); _ = cmd.Wait() })
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_ServeFlow(t *testing.T) {
	bin := buildBinary(t)
	staticDir := t.TempDir()
	base := start(t, bin, "serve", "--models-dir", createTempModelsDir(t), "--static-dir", staticDir, "--log-format", "json")

	resp, body := get(t, base+"/readyz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/readyz %d %s", resp.StatusCode, body)
	}

	resp, body = get(t, base+"/cities")
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/cities content-type=%s", ct)
	}
	var cities struct {
		Cities []string `json:"cities"`
	}
	if err := json.Unmarshal(body, &cities); err != nil || strings.Join(cities.Cities, ",") != "Delhi,Mumbai" {
		t.Fatalf("/cities %s err=%v", body, err)
	}

	resp, err := http.PostForm(base+"/predict", url.Values{"city": {"Delhi"}, "days": {"4"}})
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	page, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || bytes.Count(page, []byte("<tr><td>")) != 4 {
		t.Fatalf("/predict %d %s", resp.StatusCode, page)
	}
	resp, png := get(t, base+"/static/plots/delhi_forecast.png")
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("chart not served: %d", resp.StatusCode)
	}

	resp, err = http.Post(base+"/forecast", "application/json", strings.NewReader(`{"city":"atlantis","days":3}`))
	if err != nil {
		t.Fatalf("post json: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown city, got %d", resp.StatusCode)
	}
}

func TestBlackbox_DashboardExtractsArchive(t *testing.T) {
	bin := buildBinary(t)
	modelsDir := filepath.Join(t.TempDir(), "models")
	base := start(t, bin, "dashboard", "--models-dir", modelsDir, "--models-archive", createModelsArchive(t))

	if _, err := os.Stat(filepath.Join(modelsDir, "Delhi_AutoARIMA.pkl")); err != nil {
		t.Fatalf("archive not extracted: %v", err)
	}
	resp, body := get(t, base+"/?city=Delhi&days=3&generate=1")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("Predicted AQI for Delhi (Next 3 Days)")) {
		t.Fatalf("dashboard %d %s", resp.StatusCode, body)
	}
}
