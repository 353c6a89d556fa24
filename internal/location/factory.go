package location

import (
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/config"
	"github.com/fakhrymubarak/weather-now/internal/model"
)

// NewLocatorFromConfig wires a Locator from the location.* settings.
// Provider "ip" uses the geo-IP lookup, anything else the fixed coordinates.
func NewLocatorFromConfig(cfg config.LocationConfig, logger *zap.SugaredLogger) *Locator {
	var source Source
	switch cfg.Provider {
	case "ip":
		source = NewIPSource(cfg.IPLookupURL)
	default:
		source = StaticSource{Coords: model.Coordinates{Latitude: cfg.Latitude, Longitude: cfg.Longitude}}
	}
	return NewLocator(
		StaticStatus(cfg.Enabled),
		NewConfigPrompter(cfg.Granted, cfg.PermanentlyDenied),
		source,
		logger,
	).WithAccuracy(ParseAccuracy(cfg.Accuracy))
}
