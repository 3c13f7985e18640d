package bundle

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zip"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
}

func TestExtractIfEmpty_MissingDir(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "models.zip")
	writeZip(t, archive, map[string]string{
		"Paris_AutoARIMA.pkl": `{"kind":"constant","value":1}`,
		"Tokyo_AutoARIMA.pkl": `{"kind":"constant","value":2}`,
	})
	dir := filepath.Join(root, "models")
	names, err := ExtractIfEmpty(archive, dir)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if want := []string{"Paris_AutoARIMA.pkl", "Tokyo_AutoARIMA.pkl"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names=%v want %v", names, want)
	}
	b, err := os.ReadFile(filepath.Join(dir, "Tokyo_AutoARIMA.pkl"))
	if err != nil || string(b) != `{"kind":"constant","value":2}` {
		t.Fatalf("content=%q err=%v", b, err)
	}
}

func TestExtractIfEmpty_SkipsPopulatedDir(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "models.zip")
	writeZip(t, archive, map[string]string{"Paris_AutoARIMA.pkl": "x"})
	dir := filepath.Join(root, "models")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Lima_AutoARIMA.pkl"), []byte("y"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	names, err := ExtractIfEmpty(archive, dir)
	if err != nil || names != nil {
		t.Fatalf("expected no extraction, got names=%v err=%v", names, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Paris_AutoARIMA.pkl")); !os.IsNotExist(err) {
		t.Fatalf("archive should not have been extracted: %v", err)
	}
}

func TestExtractIfEmpty_NoArchive(t *testing.T) {
	root := t.TempDir()
	names, err := ExtractIfEmpty(filepath.Join(root, "models.zip"), filepath.Join(root, "models"))
	if err != nil || names != nil {
		t.Fatalf("names=%v err=%v", names, err)
	}
}

func TestExtract_Subdirectories(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "models.zip")
	writeZip(t, archive, map[string]string{"extra/notes.txt": "n", "Rome_AutoARIMA.pkl": "r"})
	dir := filepath.Join(root, "models")
	if err := Extract(archive, dir); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "extra", "notes.txt")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "evil.zip")
	writeZip(t, archive, map[string]string{"../escaped.pkl": "boom"})
	if err := Extract(archive, filepath.Join(root, "models")); err == nil {
		t.Fatalf("expected error for entry outside target dir")
	}
	if _, err := os.Stat(filepath.Join(root, "escaped.pkl")); !os.IsNotExist(err) {
		t.Fatalf("escaping entry was written")
	}
}

func TestExtractIfEmpty_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	writeZip(t, filepath.Join(home, "models.zip"), map[string]string{
		"Paris_AutoARIMA.pkl": `{"kind":"constant","value":1}`,
	})
	cwd := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	names, err := ExtractIfEmpty("~/models.zip", "~/models")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if want := []string{"Paris_AutoARIMA.pkl"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names=%v want %v", names, want)
	}
	if _, err := os.Stat(filepath.Join(home, "models", "Paris_AutoARIMA.pkl")); err != nil {
		t.Fatalf("artifact not under $HOME/models: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cwd, "~")); !os.IsNotExist(err) {
		t.Fatalf("a literal ~ directory was created in the working directory")
	}
}
