package forecast

import (
	"time"

	"aqicast/internal/model"
	"aqicast/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	DefaultMaxHorizon = 60
)

// Loader resolves and decodes artifacts. *registry.Store satisfies it.
type Loader interface {
	Resolve(city string) (types.Model, error)
	Open(m types.Model) (model.Model, error)
	Models() ([]types.Model, error)
}

// Config encapsulates all tunables for Service construction.
type Config struct {
	Loader     Loader
	MaxHorizon int
	// Location forecast dates are anchored in. Defaults to time.Local.
	Location *time.Location
	// Now is the clock; defaults to time.Now.
	Now    func() time.Time
	Events EventPublisher
}
