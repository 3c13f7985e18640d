// Package forecast turns a city name and a horizon into a dated forecast.
// It is structured into small files by concern:
//
//   - service.go: Service type, constructor and the Forecast entry point.
//   - config.go: Config and package defaults; New applies defaults.
//   - types.go: Result and Point.
//   - errors.go: error types and helpers (IsInvalidHorizon, IsBadModelOutput).
//   - events.go: EventPublisher and the no-op/log publishers.
//   - eventpub_memory.go: in-memory publisher for tests.
//   - metrics.go: Prometheus collectors for loads and forecasts.
//   - status.go: Ready and Status helpers.
//
// Model artifacts are resolved and decoded by the Loader (normally a
// *registry.Store); this package never touches the filesystem itself.
package forecast
