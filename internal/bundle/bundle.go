// Package bundle unpacks the bundled models archive into the models directory
// on first start.
package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"

	"aqicast/internal/common/fsutil"
)

// ExtractIfEmpty extracts archive into dir when archive exists and dir is
// missing or empty. It returns the names now present in dir, or nil when no
// extraction happened. A leading '~' in either path is expanded.
func ExtractIfEmpty(archive, dir string) ([]string, error) {
	archive, err := fsutil.ExpandHome(archive)
	if err != nil {
		return nil, err
	}
	if dir, err = fsutil.ExpandHome(dir); err != nil {
		return nil, err
	}
	if !fsutil.PathExists(archive) {
		return nil, nil
	}
	empty, err := fsutil.DirEmpty(dir)
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", dir, err)
	}
	if !empty {
		return nil, nil
	}
	if err := Extract(archive, dir); err != nil {
		return nil, err
	}
	names, err := fsutil.ListNames(dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Extract writes every entry of archive under dir, creating dir if needed.
// Entries that would land outside dir are rejected.
func Extract(archive, dir string) error {
	archive, err := fsutil.ExpandHome(archive)
	if err != nil {
		return err
	}
	if dir, err = fsutil.ExpandHome(dir); err != nil {
		return err
	}
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("abs path: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", root, err)
	}
	for _, f := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes %s", f.Name, root)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
