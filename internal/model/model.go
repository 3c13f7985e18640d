// Package model decodes forecasting model artifacts and exposes the single
// operation the rest of the service needs from them: predict n future values.
//
// Artifacts are produced offline by the training pipeline. The service treats
// them as read-only inputs and never writes them back.
package model

import "fmt"

// Model is a fitted forecaster. Predict returns exactly n values for the n
// consecutive steps following the end of the training data.
type Model interface {
	Predict(n int) ([]float64, error)
}

// Kind identifies the artifact flavour.
type Kind string

const (
	KindARIMA    Kind = "arima"
	KindConstant Kind = "constant"
)

// Constant predicts the same value for every step. Useful for baselines and
// for cities where the training pipeline could not fit a better model.
type Constant struct {
	Value float64
}

func (c Constant) Predict(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative horizon: %d", n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = c.Value
	}
	return out, nil
}
