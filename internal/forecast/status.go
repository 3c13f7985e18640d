package forecast

import "time"

// Ready reports whether at least one artifact can be served.
func (s *Service) Ready() bool {
	models, err := s.loader.Models()
	return err == nil && len(models) > 0
}

// Status summarizes the service for /readyz style probes and the CLI.
type Status struct {
	Models        int    `json:"models"`
	MaxHorizon    int    `json:"max_horizon"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Error         string `json:"error,omitempty"`
}

// Status builds a Status snapshot.
func (s *Service) Status() Status {
	st := Status{MaxHorizon: s.maxHorizon, UptimeSeconds: int64(s.now().Sub(s.startTime) / time.Second)}
	models, err := s.loader.Models()
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Models = len(models)
	return st
}
