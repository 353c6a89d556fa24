package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-now/internal/model"
	"github.com/fakhrymubarak/weather-now/internal/network"
	"github.com/fakhrymubarak/weather-now/internal/repository"
)

// CoordinateProvider yields the coordinates for one fetch.
type CoordinateProvider interface {
	CurrentCoordinates(ctx context.Context) (model.Coordinates, error)
}

// PayloadCache is the single-slot store for the last good payload.
type PayloadCache interface {
	Save(ctx context.Context, payload *model.WeatherResponse) error
	Load(ctx context.Context) (*model.WeatherResponse, bool)
}

// DisplayMapper converts a payload to display strings.
type DisplayMapper interface {
	ToDisplay(payload *model.WeatherResponse, locale string) model.DisplayModel
}

type WeatherServiceInterface interface {
	Refresh(ctx context.Context) (*model.WeatherResponse, error)
	RefreshAsync(ctx context.Context) <-chan RefreshResult
	Current(ctx context.Context, locale string) (*model.DisplayModel, bool)
}

// RefreshResult is the single value delivered by RefreshAsync.
type RefreshResult struct {
	Weather *model.WeatherResponse
	Err     error
}

// WeatherService runs coordinates -> reachability -> fetch -> cache write,
// and serves the display from the cache independently of fetch timing.
type WeatherService struct {
	Locator       CoordinateProvider
	Network       network.Checker
	Client        repository.WeatherClient
	Cache         PayloadCache
	Presenter     DisplayMapper
	Units         string
	APIKey        string
	DefaultLocale string
	Logger        *zap.SugaredLogger
}

// Refresh performs one fetch attempt. Every error is terminal for the attempt
// and the cache is only written on success.
func (s *WeatherService) Refresh(ctx context.Context) (*model.WeatherResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := s.logger()

	coords, err := s.Locator.CurrentCoordinates(ctx)
	if err != nil {
		logger.Warnw("no coordinates for refresh", "error", err)
		return nil, err
	}

	if s.Network != nil && !s.Network.Reachable(ctx) {
		logger.Warnw("skipping refresh, network unreachable")
		return nil, network.ErrNetworkUnreachable
	}

	weather, err := s.Client.FetchWeather(ctx, coords, s.Units, s.APIKey)
	if err != nil {
		logFetchError(logger, err)
		return nil, err
	}

	if err := s.Cache.Save(ctx, weather); err != nil {
		logger.Errorw("could not cache weather", "error", err)
	}
	logger.Infow("weather refreshed", "city", weather.Name, "country", weather.Country())
	return weather, nil
}

// RefreshAsync starts a refresh and returns a channel that receives exactly
// one result and is then closed. The channel is buffered so an abandoned
// caller never blocks the fetch.
func (s *WeatherService) RefreshAsync(ctx context.Context) <-chan RefreshResult {
	ch := make(chan RefreshResult, 1)
	go func() {
		defer close(ch)
		weather, err := s.Refresh(ctx)
		ch <- RefreshResult{Weather: weather, Err: err}
	}()
	return ch
}

// Current maps whatever is cached. false means nothing usable is cached.
func (s *WeatherService) Current(ctx context.Context, locale string) (*model.DisplayModel, bool) {
	if ctx == nil {
		ctx = context.Background()
	}
	payload, ok := s.Cache.Load(ctx)
	if !ok {
		return nil, false
	}
	if locale == "" {
		locale = s.DefaultLocale
	}
	view := s.Presenter.ToDisplay(payload, locale)
	return &view, true
}

func (s *WeatherService) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}

func logFetchError(logger *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, repository.ErrBadRequest):
		logger.Errorw("weather API rejected the request", "error", err)
	case errors.Is(err, repository.ErrNotFound):
		logger.Errorw("weather API could not find the location", "error", err)
	case errors.Is(err, repository.ErrHTTP):
		logger.Errorw("weather API returned an unexpected status", "error", err)
	default:
		logger.Errorw("weather fetch failed", "error", err)
	}
}
