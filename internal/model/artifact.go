package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Artifact is the on-disk representation of a fitted model. Kind defaults to
// arima when the field is absent.
type Artifact struct {
	Kind      Kind      `json:"kind,omitempty"`
	Order     Order     `json:"order"`
	Intercept float64   `json:"intercept,omitempty"`
	AR        []float64 `json:"ar,omitempty"`
	MA        []float64 `json:"ma,omitempty"`
	History   []float64 `json:"history,omitempty"`
	Residuals []float64 `json:"residuals,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

// Model builds the forecaster described by the artifact.
func (a Artifact) Model() (Model, error) {
	switch a.Kind {
	case "", KindARIMA:
		m := &ARIMA{
			Order:     a.Order,
			Intercept: a.Intercept,
			AR:        a.AR,
			MA:        a.MA,
			History:   a.History,
			Residuals: a.Residuals,
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		return m, nil
	case KindConstant:
		return Constant{Value: a.Value}, nil
	default:
		return nil, fmt.Errorf("unknown model kind %q", a.Kind)
	}
}

// Decode reads one artifact from r.
func Decode(r io.Reader) (Model, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return a.Model()
}

// DecodeFile opens path and decodes the artifact stored there.
func DecodeFile(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile stores a as JSON at path. Used by tooling and tests that need
// artifacts on disk.
func WriteFile(path string, a Artifact) error {
	b, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
