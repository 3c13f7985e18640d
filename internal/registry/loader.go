package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"aqicast/internal/common/fsutil"
	"aqicast/internal/model"
	"aqicast/pkg/types"
)

// ArtifactSuffix is appended to a city name to form its artifact file name.
const ArtifactSuffix = "_AutoARIMA.pkl"

// Store resolves city names to model artifacts in a flat directory.
// The directory is read-only from the store's point of view.
type Store struct {
	dir string
}

// Open returns a Store rooted at dir. A leading '~' is expanded and the path
// made absolute; the directory itself does not need to exist yet.
func Open(dir string) (*Store, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the absolute models directory.
func (s *Store) Dir() string { return s.dir }

// FileName returns the artifact file name for city.
func FileName(city string) string { return city + ArtifactSuffix }

// CityFromFile strips the artifact suffix. ok is false for other files.
func CityFromFile(name string) (city string, ok bool) {
	if !strings.HasSuffix(name, ArtifactSuffix) {
		return "", false
	}
	city = strings.TrimSuffix(name, ArtifactSuffix)
	return city, city != ""
}

// Models lists artifacts in the directory sorted by city. A missing
// directory yields an empty list.
func (s *Store) Models() ([]types.Model, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return []types.Model{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	models := make([]types.Model, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		city, ok := CityFromFile(e.Name())
		if !ok {
			continue
		}
		m := types.Model{City: city, File: e.Name(), Path: filepath.Join(s.dir, e.Name())}
		if fi, err := e.Info(); err == nil {
			m.SizeBytes = fi.Size()
			m.ModifiedUnix = fi.ModTime().Unix()
		}
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].City < models[j].City })
	return models, nil
}

// Cities returns the sorted city names that have an artifact.
func (s *Store) Cities() ([]string, error) {
	models, err := s.Models()
	if err != nil {
		return nil, err
	}
	cities := make([]string, len(models))
	for i, m := range models {
		cities[i] = m.City
	}
	return cities, nil
}

// Resolve maps city to its artifact. The trimmed name is tried verbatim
// first, then case-insensitively against the artifacts present; the matched
// file's stem becomes the canonical city name.
func (s *Store) Resolve(city string) (types.Model, error) {
	city = strings.TrimSpace(city)
	path := filepath.Join(s.dir, FileName(city))
	if city != "" && !strings.ContainsAny(city, `/\`) {
		models, err := s.Models()
		if err != nil {
			return types.Model{}, err
		}
		for _, m := range models {
			if m.City == city {
				return m, nil
			}
		}
		for _, m := range models {
			if strings.EqualFold(m.City, city) {
				return m, nil
			}
		}
	}
	available, err := fsutil.ListNames(s.dir)
	if err != nil {
		available = []string{}
	}
	sort.Strings(available)
	return types.Model{}, &NotFoundError{City: city, Path: path, Available: available}
}

// Load resolves city and decodes its artifact.
func (s *Store) Load(city string) (model.Model, error) {
	m, err := s.Resolve(city)
	if err != nil {
		return nil, err
	}
	return s.Open(m)
}

// Open decodes a previously resolved artifact.
func (s *Store) Open(m types.Model) (model.Model, error) {
	return model.DecodeFile(m.Path)
}
