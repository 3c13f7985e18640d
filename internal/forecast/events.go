package forecast

import "github.com/rs/zerolog"

// Event names published by the service.
const (
	EventModelLoaded       = "model_loaded"
	EventForecastGenerated = "forecast_generated"
	EventForecastFailed    = "forecast_failed"
)

// Event represents a service lifecycle event.
// Minimal and stable: name + city and optional fields via key/values.
type Event struct {
	Name   string
	City   string
	Fields map[string]any
}

// EventPublisher receives events from the service. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// LogPublisher writes events to a zerolog logger at debug level.
type LogPublisher struct {
	Logger zerolog.Logger
}

func (p LogPublisher) Publish(e Event) {
	ev := p.Logger.Debug().Str("event", e.Name).Str("city", e.City)
	if len(e.Fields) > 0 {
		ev = ev.Fields(e.Fields)
	}
	ev.Msg("forecast event")
}
