// Package cache keeps the last successful weather payload under one key.
package cache

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/storage"
)

// DefaultKey is the fixed key the payload lives under.
const DefaultKey = "weather_response_data"

// WeatherCache overwrites a single serialized payload on every save.
// There is no expiry and no versioning: the last write wins.
type WeatherCache struct {
	store  storage.Store
	key    string
	logger *zap.SugaredLogger
}

func NewWeatherCache(store storage.Store, key string, logger *zap.SugaredLogger) *WeatherCache {
	if key == "" {
		key = DefaultKey
	}
	return &WeatherCache{store: store, key: key, logger: logger}
}

func (c *WeatherCache) Save(ctx context.Context, payload *model.WeatherResponse) error {
	if payload == nil {
		return errors.New("nil weather payload")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key, string(b))
}

// Load returns false when nothing was saved yet or when the stored value can
// not be read back. Read failures are logged and treated as a miss.
func (c *WeatherCache) Load(ctx context.Context) (*model.WeatherResponse, bool) {
	val, err := c.store.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		c.logger.Warnw("cache read failed", "key", c.key, "error", err)
		return nil, false
	}
	if val == "" {
		return nil, false
	}

	var payload model.WeatherResponse
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		c.logger.Warnw("cached weather is corrupt", "key", c.key, "error", err)
		return nil, false
	}
	return &payload, true
}
