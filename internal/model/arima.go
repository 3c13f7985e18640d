package model

import "fmt"

// Order is the (p, d, q) order of an ARIMA model.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

func (o Order) String() string { return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q) }

// ARIMA holds the fitted state of a non-seasonal ARIMA model: coefficients,
// the tail of the observed series and the in-sample residuals of the
// differenced series.
type ARIMA struct {
	Order     Order
	Intercept float64
	AR        []float64
	MA        []float64
	History   []float64
	Residuals []float64
}

// Validate checks that the state is complete enough to forecast from.
func (m *ARIMA) Validate() error {
	o := m.Order
	if o.P < 0 || o.D < 0 || o.Q < 0 {
		return fmt.Errorf("invalid order %s", o)
	}
	if len(m.AR) != o.P {
		return fmt.Errorf("%s: have %d ar coefficients, want %d", o, len(m.AR), o.P)
	}
	if len(m.MA) != o.Q {
		return fmt.Errorf("%s: have %d ma coefficients, want %d", o, len(m.MA), o.Q)
	}
	if need := o.D + o.P; len(m.History) < need || len(m.History) == 0 {
		return fmt.Errorf("%s: history has %d observations, need at least %d", o, len(m.History), max(need, 1))
	}
	if len(m.Residuals) < o.Q {
		return fmt.Errorf("%s: have %d residuals, need at least %d", o, len(m.Residuals), o.Q)
	}
	return nil
}

// Predict forecasts n steps ahead. Future shocks are taken as zero, the
// series is forecast in its differenced form and then integrated back d times.
func (m *ARIMA) Predict(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative horizon: %d", n)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return []float64{}, nil
	}

	// levels[k] is the series differenced k times.
	levels := make([][]float64, m.Order.D+1)
	levels[0] = m.History
	for k := 1; k <= m.Order.D; k++ {
		levels[k] = difference(levels[k-1])
	}
	w := levels[m.Order.D]

	p, q := m.Order.P, m.Order.Q
	past := append([]float64(nil), w...)
	shocks := append([]float64(nil), m.Residuals...)
	diffs := make([]float64, n)
	for h := 0; h < n; h++ {
		v := m.Intercept
		for i := 0; i < p; i++ {
			v += m.AR[i] * past[len(past)-1-i]
		}
		for j := 0; j < q; j++ {
			v += m.MA[j] * shocks[len(shocks)-1-j]
		}
		past = append(past, v)
		shocks = append(shocks, 0)
		diffs[h] = v
	}

	out := diffs
	for k := m.Order.D - 1; k >= 0; k-- {
		out = integrate(levels[k][len(levels[k])-1], out)
	}
	return out, nil
}

func difference(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

func integrate(last float64, diffs []float64) []float64 {
	out := make([]float64, len(diffs))
	acc := last
	for i, d := range diffs {
		acc += d
		out[i] = acc
	}
	return out
}
