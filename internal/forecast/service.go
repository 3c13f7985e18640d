package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"aqicast/internal/registry"
	"aqicast/pkg/types"
)

// Service loads models and produces dated forecasts. It holds no per-request
// state and is safe for concurrent use as long as its Loader is.
type Service struct {
	loader     Loader
	maxHorizon int
	loc        *time.Location
	now        func() time.Time
	events     EventPublisher
	startTime  time.Time
}

// New constructs a Service from Config, applying defaults to unset fields.
func New(cfg Config) *Service {
	s := &Service{
		loader:     cfg.Loader,
		maxHorizon: cfg.MaxHorizon,
		loc:        cfg.Location,
		now:        cfg.Now,
		events:     cfg.Events,
	}
	if s.maxHorizon <= 0 {
		s.maxHorizon = DefaultMaxHorizon
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	s.startTime = s.now()
	return s
}

// MaxHorizon is the largest accepted number of days.
func (s *Service) MaxHorizon() int { return s.maxHorizon }

// Cities lists the cities with an artifact, sorted ascending.
func (s *Service) Cities() ([]string, error) {
	models, err := s.loader.Models()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.City
	}
	return out, nil
}

// Models lists the artifacts known to the loader.
func (s *Service) Models() ([]types.Model, error) { return s.loader.Models() }

// StartDate returns today at midnight in the service location.
func (s *Service) StartDate() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// Forecast predicts days values for city, dated from today onwards.
func (s *Service) Forecast(ctx context.Context, city string, days int) (Result, error) {
	if days < 1 || days > s.maxHorizon {
		forecastsTotal.WithLabelValues(outcomeBadHorizon).Inc()
		err := &HorizonError{Days: days, Max: s.maxHorizon}
		s.events.Publish(Event{Name: EventForecastFailed, City: city, Fields: map[string]any{"error": err.Error()}})
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		forecastsTotal.WithLabelValues(outcomeCanceled).Inc()
		return Result{}, err
	}

	res, err := s.forecast(city, days)
	if err != nil {
		outcome := outcomeModelError
		if registry.IsNotFound(err) {
			outcome = outcomeNotFound
		}
		forecastsTotal.WithLabelValues(outcome).Inc()
		s.events.Publish(Event{Name: EventForecastFailed, City: city, Fields: map[string]any{"error": err.Error()}})
		return Result{}, err
	}
	forecastsTotal.WithLabelValues(outcomeOK).Inc()
	horizonDays.Observe(float64(days))
	s.events.Publish(Event{Name: EventForecastGenerated, City: res.City, Fields: map[string]any{"days": days}})
	return res, nil
}

func (s *Service) forecast(city string, days int) (Result, error) {
	art, err := s.loader.Resolve(city)
	if err != nil {
		return Result{}, err
	}
	start := time.Now()
	mdl, err := s.loader.Open(art)
	if err != nil {
		return Result{}, fmt.Errorf("load model for %s: %w", art.City, err)
	}
	modelLoadDuration.Observe(time.Since(start).Seconds())
	s.events.Publish(Event{Name: EventModelLoaded, City: art.City, Fields: map[string]any{"file": art.File}})

	values, err := mdl.Predict(days)
	if err != nil {
		return Result{}, fmt.Errorf("predict %s: %w", art.City, err)
	}
	if len(values) != days {
		return Result{}, badOutputError{city: art.City, msg: fmt.Sprintf("returned %d values, want %d", len(values), days)}
	}

	first := s.StartDate()
	res := Result{City: art.City, Start: first, Points: make([]Point, days)}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, badOutputError{city: art.City, msg: fmt.Sprintf("returned non-finite value at step %d", i)}
		}
		res.Points[i] = Point{Date: first.AddDate(0, 0, i), Value: v}
	}
	return res, nil
}
