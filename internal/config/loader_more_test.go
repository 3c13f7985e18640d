package config

import (
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/aqicast-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_MalformedFiles(t *testing.T) {
	cases := map[string]string{
		"bad.yaml":       "models_dir: models\n: broken\n",
		"bad.json":       `{ "models_dir": "models", "max_horizon": }`,
		"bad.toml":       "models_dir = \"models\"\nmax_horizon\n",
		"wrongtype.yaml": "max_horizon: many\n",
		"wrongtype.json": `{"cors_origins": "not-a-list"}`,
		"wrongtype.toml": "rate_limit_rps = \"fast\"\n",
	}
	d := t.TempDir()
	for name, body := range cases {
		p := writeTempFile(t, d, name, body)
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected unmarshal error", name)
		}
	}
}
